package main

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"github.com/MihkelHunter/habitual/internal/config"
	"github.com/MihkelHunter/habitual/internal/habit"
	"github.com/MihkelHunter/habitual/internal/store"
)

// ── Colour palette ───────────────────────────────────────────────────────────

var (
	colBackground = color.NRGBA{R: 15, G: 15, B: 20, A: 255}
	colSurface    = color.NRGBA{R: 26, G: 26, B: 36, A: 255}
	colAccent     = color.NRGBA{R: 99, G: 102, B: 241, A: 255}
	colComplete   = color.NRGBA{R: 34, G: 197, B: 94, A: 255}
	colPending    = color.NRGBA{R: 59, G: 130, B: 246, A: 255}
	colIncomplete = color.NRGBA{R: 239, G: 68, B: 68, A: 255}
	colLocked     = color.NRGBA{R: 40, G: 40, B: 52, A: 255}
	colMuted      = color.NRGBA{R: 100, G: 116, B: 139, A: 255}
)

func categoryColour(c habit.Category) color.Color {
	switch c {
	case habit.Complete:
		return colComplete
	case habit.TodayPending:
		return colPending
	case habit.Incomplete:
		return colIncomplete
	case habit.Locked:
		return colLocked
	default:
		return colSurface
	}
}

// ── App state ────────────────────────────────────────────────────────────────

type appState struct {
	sess *habit.Session
	log  log.FieldLogger
	win  fyne.Window

	month      time.Time // first day of the displayed month
	monthLabel *widget.Label
	grid       *fyne.Container

	streakText *canvas.Text
	dayLabel   *widget.Label
	entry      *widget.Entry
	taskList   *widget.List
	emptyLabel *widget.Label
	status     *widget.Label
	tasks      []habit.Task
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := cfg.NewLogger()

	st, err := store.Open(cfg, logger)
	if err != nil {
		logger.Fatalf("store: %v", err)
	}
	defer st.Close()

	sess := habit.NewSession(st)

	a := app.New()
	a.Settings().SetTheme(&darkTheme{})

	win := a.NewWindow("Habitual")
	win.Resize(fyne.NewSize(760, 720))
	win.CenterOnScreen()

	today := sess.Today()
	s := &appState{
		sess:  sess,
		log:   logger,
		win:   win,
		month: today.AddDate(0, 0, 1-today.Day()),
	}
	win.SetContent(s.buildUI())
	s.refresh()

	win.ShowAndRun()
}

// ── Build UI ─────────────────────────────────────────────────────────────────

func (s *appState) buildUI() fyne.CanvasObject {
	// Header
	s.streakText = canvas.NewText("", color.White)
	s.streakText.TextSize = 24
	s.streakText.TextStyle = fyne.TextStyle{Bold: true}
	s.streakText.Alignment = fyne.TextAlignCenter

	headerBG := canvas.NewRectangle(colSurface)
	headerStack := container.NewStack(headerBG, container.NewPadded(s.streakText))

	// Calendar
	prevBtn := widget.NewButtonWithIcon("", theme.NavigateBackIcon(), func() { s.shiftMonth(-1) })
	nextBtn := widget.NewButtonWithIcon("", theme.NavigateNextIcon(), func() { s.shiftMonth(1) })
	s.monthLabel = widget.NewLabel("")
	s.monthLabel.TextStyle = fyne.TextStyle{Bold: true}
	monthRow := container.NewHBox(layout.NewSpacer(), prevBtn, s.monthLabel, nextBtn, layout.NewSpacer())
	s.grid = container.NewGridWithColumns(7)

	// Task entry
	s.dayLabel = widget.NewLabel("")
	s.dayLabel.TextStyle = fyne.TextStyle{Bold: true}
	s.entry = widget.NewEntry()
	s.entry.SetPlaceHolder("Add a new task…")
	s.entry.OnSubmitted = func(string) { s.addTask() }
	addBtn := widget.NewButton("Add", s.addTask)
	addBtn.Importance = widget.HighImportance
	entryRow := container.NewBorder(nil, nil, nil, addBtn, s.entry)

	// Task list
	s.taskList = widget.NewList(
		func() int { return len(s.tasks) },
		s.makeTaskRow,
		s.updateTaskRow,
	)
	s.taskList.OnSelected = func(id widget.ListItemID) { s.taskList.Unselect(id) }
	s.emptyLabel = widget.NewLabel("No tasks for this day. Time to relax! 🌴")
	s.emptyLabel.Alignment = fyne.TextAlignCenter

	// Footer / notifications
	s.status = widget.NewLabel("")
	footerBG := canvas.NewRectangle(colSurface)
	footerStack := container.NewStack(footerBG, container.NewPadded(container.NewCenter(s.status)))

	// Root layout
	bg := canvas.NewRectangle(colBackground)
	top := container.NewVBox(headerStack, monthRow, s.grid, s.dayLabel, entryRow)
	ui := container.NewBorder(
		top,
		footerStack,
		nil, nil,
		container.NewStack(container.NewScroll(s.taskList), s.emptyLabel),
	)
	return container.NewStack(bg, ui)
}

// ── Calendar tiles ───────────────────────────────────────────────────────────

func (s *appState) buildTiles() []fyne.CanvasObject {
	var objs []fyne.CanvasObject
	for _, name := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		l := canvas.NewText(name, colMuted)
		l.Alignment = fyne.TextAlignCenter
		objs = append(objs, l)
	}
	for i := 0; i < habit.Leading(s.month.Year(), s.month.Month(), time.Sunday); i++ {
		objs = append(objs, layout.NewSpacer())
	}
	for _, cell := range s.sess.Month(s.month) {
		objs = append(objs, s.makeTile(cell))
	}
	return objs
}

func (s *appState) makeTile(cell habit.DayCell) fyne.CanvasObject {
	bg := canvas.NewRectangle(categoryColour(cell.Category))
	bg.CornerRadius = 16
	if habit.SameDay(cell.Date, s.sess.Selected()) {
		bg.StrokeColor = colAccent
		bg.StrokeWidth = 2
	}

	date := cell.Date
	btn := widget.NewButton(cell.Category.Label(cell.Date.Day()), func() { s.selectDay(date) })
	btn.Importance = widget.LowImportance
	if !cell.Category.Selectable() {
		btn.Disable()
	}
	return container.NewStack(bg, btn)
}

// ── Task row template ─────────────────────────────────────────────────────────

func (s *appState) makeTaskRow() fyne.CanvasObject {
	check := widget.NewCheck("", nil)
	textLabel := widget.NewLabel("text")

	editBtn := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {})
	editBtn.Importance = widget.LowImportance

	deleteBtn := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {})
	deleteBtn.Importance = widget.DangerImportance

	left := container.NewHBox(check, textLabel)
	right := container.NewHBox(editBtn, deleteBtn)
	rowContent := container.NewBorder(nil, nil, left, right)

	rowBG := canvas.NewRectangle(colSurface)
	rowBG.CornerRadius = 8

	return container.NewStack(rowBG, container.NewPadded(rowContent))
}

func (s *appState) updateTaskRow(i widget.ListItemID, obj fyne.CanvasObject) {
	if i >= len(s.tasks) {
		return
	}
	t := s.tasks[i]

	stack := obj.(*fyne.Container)
	rowBG := stack.Objects[0].(*canvas.Rectangle)
	padded := stack.Objects[1].(*fyne.Container)
	border := padded.Objects[0].(*fyne.Container)

	// container.NewBorder keeps only the non-nil children, left then right
	left := border.Objects[0].(*fyne.Container)
	right := border.Objects[1].(*fyne.Container)

	check := left.Objects[0].(*widget.Check)
	textLabel := left.Objects[1].(*widget.Label)
	editBtn := right.Objects[0].(*widget.Button)
	deleteBtn := right.Objects[1].(*widget.Button)

	// SetChecked fires OnChanged, so detach it first
	check.OnChanged = nil
	check.SetChecked(t.Completed)

	if t.Completed {
		textLabel.TextStyle = fyne.TextStyle{Italic: true}
		rowBG.FillColor = color.NRGBA{R: 20, G: 30, B: 25, A: 255}
	} else {
		textLabel.TextStyle = fyne.TextStyle{}
		rowBG.FillColor = colSurface
	}
	rowBG.Refresh()
	textLabel.SetText(t.Text)

	task := t
	check.OnChanged = func(bool) { s.toggleTask(task) }
	editBtn.OnTapped = func() { s.showEditForm(task) }
	deleteBtn.OnTapped = func() { s.confirmDelete(task) }
}

// ── Actions ───────────────────────────────────────────────────────────────────

func (s *appState) refresh() {
	s.tasks = s.sess.Tasks()
	s.taskList.Refresh()
	if len(s.tasks) == 0 {
		s.emptyLabel.Show()
	} else {
		s.emptyLabel.Hide()
	}

	s.streakText.Text = fmt.Sprintf("Habitual 🔥 %d", s.sess.Streak())
	s.streakText.Refresh()
	s.dayLabel.SetText("Tasks for " + s.sess.Selected().Format("January 2, 2006"))

	s.monthLabel.SetText(s.month.Format("January 2006"))
	s.grid.Objects = s.buildTiles()
	s.grid.Refresh()
}

func (s *appState) notify(msg string) {
	s.status.SetText(msg)
}

// fail reports err. Persistence failures keep the change in memory, so the
// view is refreshed either way.
func (s *appState) fail(err error) {
	switch {
	case errors.Is(err, habit.ErrValidation):
		s.notify("Task cannot be empty! 💀")
	case errors.Is(err, habit.ErrPersist):
		s.log.WithError(err).Error("tasks not saved")
		dialog.ShowError(fmt.Errorf("changes could not be saved and will be lost on exit: %w", err), s.win)
		s.refresh()
	default:
		dialog.ShowError(err, s.win)
	}
}

func (s *appState) shiftMonth(delta int) {
	s.month = s.month.AddDate(0, delta, 0)
	s.refresh()
}

func (s *appState) selectDay(date time.Time) {
	if err := s.sess.Select(date); err != nil {
		s.fail(err)
		return
	}
	s.refresh()
}

func (s *appState) addTask() {
	if _, err := s.sess.Add(s.entry.Text); err != nil {
		s.fail(err)
		return
	}
	s.entry.SetText("")
	s.notify("Task added! 📌")
	s.refresh()
}

func (s *appState) toggleTask(t habit.Task) {
	if err := s.sess.Toggle(t.ID); err != nil {
		s.fail(err)
		return
	}
	s.refresh()
}

func (s *appState) confirmDelete(t habit.Task) {
	dialog.ShowConfirm("Delete Task",
		fmt.Sprintf("Delete \"%s\"?", t.Text),
		func(ok bool) {
			if !ok {
				return
			}
			if err := s.sess.Delete(t.ID); err != nil {
				s.fail(err)
				return
			}
			s.notify("Task deleted. 🗑️")
			s.refresh()
		}, s.win)
}

func (s *appState) showEditForm(t habit.Task) {
	textEntry := widget.NewEntry()
	textEntry.SetText(t.Text)

	form := widget.NewForm(widget.NewFormItem("Task", textEntry))

	dialog.ShowCustomConfirm("Edit Task", "Save", "Cancel", form, func(ok bool) {
		if !ok {
			return
		}
		if err := s.sess.Edit(t.ID, textEntry.Text); err != nil {
			s.fail(err)
			return
		}
		s.notify("Task updated!")
		s.refresh()
	}, s.win)
}

// ── Custom dark theme ─────────────────────────────────────────────────────────

type darkTheme struct{}

func (darkTheme) Color(n fyne.ThemeColorName, v fyne.ThemeVariant) color.Color {
	switch n {
	case theme.ColorNameBackground:
		return colBackground
	case theme.ColorNameButton:
		return colAccent
	case theme.ColorNamePrimary:
		return colAccent
	case theme.ColorNameForeground:
		return color.White
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 35, G: 35, B: 50, A: 255}
	case theme.ColorNameDisabled:
		return colMuted
	case theme.ColorNameSeparator:
		return color.NRGBA{R: 50, G: 50, B: 65, A: 255}
	}
	return theme.DefaultTheme().Color(n, v)
}

func (darkTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (darkTheme) Icon(n fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(n)
}

func (darkTheme) Size(n fyne.ThemeSizeName) float32 {
	switch n {
	case theme.SizeNamePadding:
		return 8
	case theme.SizeNameText:
		return 14
	case theme.SizeNameInlineIcon:
		return 18
	}
	return theme.DefaultTheme().Size(n)
}
