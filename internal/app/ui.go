package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/data/binding"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"yashubustudio/clusterviz/clusterviz"
	"yashubustudio/clusterviz/render"
)

// policyChoices lists the non-numeric handling options in menu order.
var policyChoices = []clusterviz.Policy{
	clusterviz.PolicyZeroFill,
	clusterviz.PolicyManualMap,
	clusterviz.PolicyExcludeRows,
	clusterviz.PolicyExcludeColumns,
}

const emptyValueLabel = "(空欄)"

type uiState struct {
	session *clusterviz.Session
	cfg     clusterviz.Config

	w          fyne.Window
	status     *widget.Label
	log        *widget.Entry
	statusBind binding.String
	logBind    binding.String
	logLines   []string

	classCheck   *widget.Check
	classCount   *widget.Label
	policySel    *widget.Select
	columnSel    *widget.Select
	valueSel     *widget.Select
	substitute   *widget.Entry
	assignBtn    *widget.Button
	clearBtn     *widget.Button
	algorithmSel *widget.Select
	clusterEntry *widget.Entry
	dimensionSel *widget.RadioGroup

	runBtns   [clusterviz.DisplaySlots]*widget.Button
	slotPanes [clusterviz.DisplaySlots]*fyne.Container

	catalogCols []int
}

func buildUI(a fyne.App, session *clusterviz.Session, cfg clusterviz.Config) *uiState {
	u := &uiState{session: session, cfg: cfg}
	u.w = a.NewWindow("Data Clustering Visualizer")

	u.statusBind = binding.NewString()
	_ = u.statusBind.Set("ファイルを読み込んでください")
	u.logBind = binding.NewString()

	u.status = widget.NewLabelWithData(u.statusBind)
	u.log = widget.NewEntryWithData(u.logBind)
	u.log.MultiLine = true
	u.log.Wrapping = fyne.TextWrapWord
	u.log.SetPlaceHolder("処理ログ")
	u.log.Disable()

	loadBtn := widget.NewButtonWithIcon("ファイル読込", theme.FolderOpenIcon(), func() { u.onLoadFile() })

	u.classCheck = widget.NewCheck("最終列はクラス値", func(checked bool) {
		if err := u.session.SetClassFlag(checked); err != nil {
			dialog.ShowError(err, u.w)
		}
		u.refreshDerived()
	})
	u.classCount = widget.NewLabel("")

	policyLabels := make([]string, len(policyChoices))
	for i, p := range policyChoices {
		policyLabels[i] = p.String()
	}
	u.policySel = widget.NewSelect(policyLabels, func(selected string) {
		for _, p := range policyChoices {
			if p.String() == selected {
				u.session.SetPolicy(p)
				break
			}
		}
		u.refreshButtons()
	})

	u.columnSel = widget.NewSelect(nil, func(string) { u.refreshValueChoices() })
	u.valueSel = widget.NewSelect(nil, func(string) { u.showCurrentSubstitute() })
	u.substitute = widget.NewEntry()
	u.substitute.SetPlaceHolder("数値")
	u.assignBtn = widget.NewButtonWithIcon("割当", theme.ConfirmIcon(), func() { u.onAssign() })
	u.clearBtn = widget.NewButtonWithIcon("クリア", theme.ContentClearIcon(), func() { u.onClearAssign() })

	algoNames := make([]string, 0, len(clusterviz.Algorithms()))
	for _, algo := range clusterviz.Algorithms() {
		algoNames = append(algoNames, string(algo))
	}
	u.algorithmSel = widget.NewSelect(algoNames, func(selected string) {
		u.session.SetAlgorithm(clusterviz.Algorithm(selected))
		u.refreshButtons()
	})

	u.clusterEntry = widget.NewEntry()
	u.clusterEntry.SetPlaceHolder("クラスタ数")
	u.clusterEntry.OnChanged = func(text string) {
		u.session.SetClusterCount(text)
		u.refreshButtons()
	}

	u.dimensionSel = widget.NewRadioGroup([]string{"2D", "3D"}, func(selected string) {
		dim := 2
		if selected == "3D" {
			dim = 3
		}
		if selected != "" && !u.session.SetDimension(dim) {
			u.dimensionSel.SetSelected("")
			u.appendLog("3D表示には3列以上の特徴量が必要です")
		}
		u.refreshButtons()
	})
	u.dimensionSel.Horizontal = true

	for slot := 0; slot < clusterviz.DisplaySlots; slot++ {
		slot := slot
		u.runBtns[slot] = widget.NewButtonWithIcon(fmt.Sprintf("表示%d", slot+1), theme.MediaPlayIcon(), func() {
			u.onRun(slot)
		})
		u.runBtns[slot].Disable()
		u.slotPanes[slot] = container.NewStack()
	}

	mappingRow := container.NewGridWithColumns(2, u.columnSel, u.valueSel)
	mappingActions := container.NewGridWithColumns(2, u.assignBtn, u.clearBtn)
	runRow := container.NewGridWithColumns(clusterviz.DisplaySlots, u.runBtns[0], u.runBtns[1])

	left := container.NewVBox(
		loadBtn,
		container.NewHBox(u.classCheck, u.classCount),
		widget.NewSeparator(),
		widget.NewLabelWithStyle("非数値の扱い", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.policySel,
		mappingRow,
		u.substitute,
		mappingActions,
		widget.NewSeparator(),
		widget.NewLabelWithStyle("クラスタリング", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		u.algorithmSel,
		u.clusterEntry,
		u.dimensionSel,
		runRow,
		widget.NewSeparator(),
		u.status,
		container.NewMax(u.log),
	)

	right := container.NewGridWithColumns(clusterviz.DisplaySlots, u.slotPanes[0], u.slotPanes[1])
	split := container.NewHSplit(left, right)
	split.Offset = 0.3

	u.w.SetContent(split)
	u.w.Resize(fyne.NewSize(1180, 760))

	if cfg.DefaultAlgorithm != "" {
		u.algorithmSel.SetSelected(cfg.DefaultAlgorithm)
	}
	return u
}

func (u *uiState) appendLog(msg string) {
	line := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg)
	u.logLines = append(u.logLines, line)
	if len(u.logLines) > 200 {
		u.logLines = u.logLines[len(u.logLines)-200:]
	}
	_ = u.logBind.Set(strings.Join(u.logLines, "\n"))
}

func (u *uiState) setStatus(text string) {
	_ = u.statusBind.Set(text)
}

func (u *uiState) onLoadFile() {
	fd := dialog.NewFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		path := rc.URI().Path()
		_ = rc.Close()
		u.cfg.LastDirectory = filepath.Dir(path)
		if err := u.session.LoadFile(path); err != nil {
			u.setStatus("読込エラー")
			u.appendLog(fmt.Sprintf("読込エラー: %v", err))
			dialog.ShowError(err, u.w)
			u.refreshDerived()
			return
		}
		t := u.session.Table()
		u.setStatus(fmt.Sprintf("%s (%d行 %d列)", filepath.Base(path), t.Rows(), t.Cols()))
		u.appendLog(fmt.Sprintf("ファイル読込: %s", filepath.Base(path)))
		u.policySel.ClearSelected()
		u.clusterEntry.SetText("")
		u.dimensionSel.SetSelected("")
		u.algorithmSel.ClearSelected()
		u.refreshDerived()
	}, u.w)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".txt", ".csv"}))
	fd.Show()
}

// refreshDerived re-syncs the catalog choices and the class-count label
// after a load or a class-flag change.
func (u *uiState) refreshDerived() {
	if u.session.HasClassFlag() && u.session.LoadError() == nil && u.session.Table() != nil {
		u.classCount.SetText(fmt.Sprintf("クラス数: %d", u.session.ClassCount()))
	} else {
		u.classCount.SetText("")
	}
	u.refreshColumnChoices()
	u.refreshButtons()
}

func (u *uiState) refreshColumnChoices() {
	u.catalogCols = nil
	var options []string
	if cat := u.session.Catalog(); cat != nil {
		u.catalogCols = cat.Columns()
		for _, col := range u.catalogCols {
			options = append(options, fmt.Sprintf("列 %d", col+1))
		}
	}
	u.columnSel.Options = options
	u.columnSel.ClearSelected()
	u.valueSel.Options = nil
	u.valueSel.ClearSelected()
	u.substitute.SetText("")
	u.columnSel.Refresh()
	u.valueSel.Refresh()
}

func (u *uiState) selectedColumn() (int, bool) {
	idx := u.columnSel.SelectedIndex()
	if idx < 0 || idx >= len(u.catalogCols) {
		return 0, false
	}
	return u.catalogCols[idx], true
}

func (u *uiState) selectedEntry() *clusterviz.Entry {
	col, ok := u.selectedColumn()
	if !ok {
		return nil
	}
	cat := u.session.Catalog()
	if cat == nil {
		return nil
	}
	entries := cat.Entries(col)
	idx := u.valueSel.SelectedIndex()
	if idx < 0 || idx >= len(entries) {
		return nil
	}
	return entries[idx]
}

func (u *uiState) refreshValueChoices() {
	var options []string
	if col, ok := u.selectedColumn(); ok {
		if cat := u.session.Catalog(); cat != nil {
			for _, e := range cat.Entries(col) {
				label := e.Raw
				if label == "" {
					label = emptyValueLabel
				}
				options = append(options, label)
			}
		}
	}
	u.valueSel.Options = options
	u.valueSel.ClearSelected()
	u.substitute.SetText("")
	u.valueSel.Refresh()
}

func (u *uiState) showCurrentSubstitute() {
	if e := u.selectedEntry(); e != nil {
		u.substitute.SetText(e.Mapped)
	}
}

func (u *uiState) onAssign() {
	e := u.selectedEntry()
	if e == nil {
		dialog.ShowInformation("情報", "割当先の値を選択してください", u.w)
		return
	}
	if err := u.session.AssignValue(e.Column, e.Raw, u.substitute.Text); err != nil {
		dialog.ShowError(err, u.w)
	} else {
		u.appendLog(fmt.Sprintf("列 %d の %q を %s に割当", e.Column+1, e.Raw, u.substitute.Text))
	}
	u.refreshButtons()
}

func (u *uiState) onClearAssign() {
	e := u.selectedEntry()
	if e == nil {
		return
	}
	u.session.ClearValue(e.Column, e.Raw)
	u.substitute.SetText("")
	u.refreshButtons()
}

// refreshButtons re-derives the run-button state. The second display
// unlocks only after the first result exists.
func (u *uiState) refreshButtons() {
	ready := u.session.Readiness().Ready()
	if ready {
		u.runBtns[0].Enable()
	} else {
		u.runBtns[0].Disable()
	}
	if ready && u.session.HasDisplay() {
		u.runBtns[1].Enable()
	} else {
		u.runBtns[1].Disable()
	}
}

func (u *uiState) onRun(slot int) {
	res, err := u.session.RunDisplay(slot)
	if err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	u.showResult(slot, res)
	u.appendLog(fmt.Sprintf("表示%d: %s", slot+1, res.Algorithm))
	u.refreshButtons()
}

func (u *uiState) showResult(slot int, res *clusterviz.DisplayResult) {
	sc := u.scatterFor(res)
	data, err := sc.Image()
	if err != nil {
		dialog.ShowError(err, u.w)
		return
	}
	img := canvas.NewImageFromResource(fyne.NewStaticResource(fmt.Sprintf("plot%d.png", slot+1), data))
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(float32(u.cfg.PlotWidth)/2, float32(u.cfg.PlotHeight)/2))

	info := widget.NewLabel(resultSummary(res))
	saveBtn := widget.NewButtonWithIcon("保存", theme.DocumentSaveIcon(), func() { u.onSave(slot) })
	closeBtn := widget.NewButtonWithIcon("閉じる", theme.CancelIcon(), func() {
		u.session.CloseSlot(slot)
		u.slotPanes[slot].Objects = nil
		u.slotPanes[slot].Refresh()
		u.refreshButtons()
	})

	pane := container.NewBorder(nil, container.NewVBox(info, container.NewGridWithColumns(2, saveBtn, closeBtn)), nil, nil, img)
	u.slotPanes[slot].Objects = []fyne.CanvasObject{pane}
	u.slotPanes[slot].Refresh()
}

func resultSummary(res *clusterviz.DisplayResult) string {
	summary := string(res.Algorithm)
	if res.HasMetric {
		summary += fmt.Sprintf(" / Rand index: %.2f", res.Metric)
	}
	return summary
}

func (u *uiState) scatterFor(res *clusterviz.DisplayResult) *render.Scatter {
	return &render.Scatter{
		Title:  string(res.Algorithm),
		Points: res.Projection,
		Labels: res.Labels,
		Width:  u.cfg.PlotWidth,
		Height: u.cfg.PlotHeight,
	}
}

func (u *uiState) onSave(slot int) {
	res := u.session.Slot(slot)
	if res == nil {
		return
	}
	fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil || uc == nil {
			return
		}
		path := uc.URI().Path()
		_ = uc.Close()
		if err := saveResult(path, res, u.scatterFor(res)); err != nil {
			dialog.ShowError(err, u.w)
			return
		}
		u.appendLog(fmt.Sprintf("保存しました: %s", filepath.Base(path)))
	}, u.w)
	fd.SetFileName("result.txt")
	fd.Show()
}

// saveResult dispatches on the file extension: text formats export the
// clustered data, image formats the plot, .html an interactive page.
func saveResult(path string, res *clusterviz.DisplayResult, sc *render.Scatter) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".csv":
		return clusterviz.WriteResult(path, res)
	case ".png", ".jpg", ".jpeg":
		return sc.Save(path)
	case ".html":
		return sc.SaveHTML(path)
	default:
		return fmt.Errorf("app: unsupported save format %q", filepath.Ext(path))
	}
}
