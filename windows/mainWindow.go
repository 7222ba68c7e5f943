package windows

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"gsdash/dataset"
	"gsdash/gsheet"
)

// Options configures the dashboard at startup.
type Options struct {
	// CredentialsJSON holds the service account key, if already loaded.
	CredentialsJSON []byte
	// SheetURL and SheetName prefill the sidebar inputs.
	SheetURL  string
	SheetName string
	// AutoRefresh enables the refresh countdown from the start.
	AutoRefresh bool
}

// MainWindow is the dashboard shell: a config sidebar, a status bar, and
// Data / Charts / Analytics tabs driven by the loaded dataset.
type MainWindow struct {
	a fyne.App
	w fyne.Window

	binder *gsheet.Binder
	loader *gsheet.Loader
	table  *dataset.Table

	urlEntry    *widget.Entry
	sheetEntry  *widget.Entry
	autoRefresh *widget.Check
	countdown   *widget.Label
	statusBar   *widget.Label

	tabs         *container.AppTabs
	dataTab      *DataTab
	chartsTab    *ChartsTab
	analyticsTab *AnalyticsTab
	welcome      fyne.CanvasObject
	body         *fyne.Container

	refreshTimer *RefreshTimer
}

// CreateMainWindow builds the window and runs the event loop.
func CreateMainWindow(opts Options) *MainWindow {
	var v MainWindow
	v.NewMainWindow(opts)
	return &v
}

// SetStatus updates the status bar message
func (t *MainWindow) SetStatus(message string) {
	if t.statusBar != nil {
		t.statusBar.SetText(message)
	}
}

func (t *MainWindow) NewMainWindow(opts Options) {
	t.a = app.NewWithID("gsdash")
	t.a.Settings().SetTheme(&CustomTheme{})
	t.w = t.a.NewWindow("Sheets Dashboard")
	t.w.Resize(fyne.NewSize(900, 700))

	t.binder = gsheet.NewBinder(opts.CredentialsJSON)
	t.loader = gsheet.NewLoader(t.binder, gsheet.DefaultFreshnessWindow)

	t.statusBar = widget.NewLabel("Ready")
	t.statusBar.TextStyle = fyne.TextStyle{Italic: true}

	t.urlEntry = widget.NewEntry()
	t.urlEntry.SetPlaceHolder("https://docs.google.com/spreadsheets/d/xxx...")
	t.urlEntry.SetText(opts.SheetURL)
	t.urlEntry.OnSubmitted = func(string) { t.reload(false) }

	t.sheetEntry = widget.NewEntry()
	t.sheetEntry.SetText("Sheet1")
	if opts.SheetName != "" {
		t.sheetEntry.SetText(opts.SheetName)
	}
	t.sheetEntry.OnSubmitted = func(string) { t.reload(false) }

	t.countdown = widget.NewLabel("")
	t.countdown.TextStyle = fyne.TextStyle{Italic: true}

	t.autoRefresh = widget.NewCheck("Auto refresh (5 min)", func(on bool) {
		if on {
			t.startAutoRefresh()
		} else {
			t.stopAutoRefresh()
		}
	})

	refreshNow := widget.NewButtonWithIcon("Refresh now", theme.ViewRefreshIcon(), func() {
		t.reload(true)
	})

	loadButton := widget.NewButtonWithIcon("Load", theme.DownloadIcon(), func() {
		t.reload(false)
	})

	sidebar := container.NewVBox(
		widget.NewCard("", "Configuration", container.NewVBox(
			widget.NewLabel("Spreadsheet URL:"),
			t.urlEntry,
			widget.NewLabel("Sheet name:"),
			t.sheetEntry,
			loadButton,
			widget.NewSeparator(),
			t.autoRefresh,
			t.countdown,
			refreshNow,
		)),
	)
	left := container.NewGridWrap(fyne.NewSize(260, 620), sidebar)

	t.dataTab = NewDataTab(t.w)
	t.chartsTab = NewChartsTab()
	t.analyticsTab = NewAnalyticsTab(t.w)

	t.tabs = container.NewAppTabs(
		container.NewTabItemWithIcon("Data", theme.ListIcon(), t.dataTab.Content()),
		container.NewTabItemWithIcon("Charts", theme.InfoIcon(), t.chartsTab.Content()),
		container.NewTabItemWithIcon("Analytics", theme.SearchIcon(), t.analyticsTab.Content()),
	)

	t.welcome = t.buildWelcome()
	t.body = container.NewStack(t.welcome)

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.MenuIcon(), func() {
			if !left.Visible() {
				left.Show()
			} else {
				left.Hide()
			}
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileIcon(), func() {
			t.OpenCredentials()
		}),
		widget.NewToolbarSpacer(),
	)

	bottom := container.NewHBox(t.statusBar)
	c := container.NewBorder(toolbar, bottom, left, nil, widget.NewCard("", "", t.body))
	t.w.SetContent(c)

	if len(opts.CredentialsJSON) == 0 {
		t.OpenCredentials()
	} else if opts.SheetURL != "" {
		t.reload(false)
	}
	if opts.AutoRefresh {
		t.autoRefresh.SetChecked(true)
	}

	t.w.ShowAndRun()
}

// buildWelcome is the empty state shown before any data is loaded.
func (t *MainWindow) buildWelcome() fyne.CanvasObject {
	md := widget.NewRichTextFromMarkdown(`## Sheets Dashboard

Enter a Google Sheets URL in the sidebar to begin.

**Setup:**

1. Create a Google Sheet with your data
2. Set up a GCP service account
3. Share the sheet with the service account email
4. Pick the key file from the toolbar
5. Enter the URL and sheet name
`)
	md.Wrapping = fyne.TextWrapWord
	return container.NewCenter(md)
}

// OpenCredentials shows the key-file picker and rebinds the client.
func (t *MainWindow) OpenCredentials() {
	cd := NewCredentialsDialog(t.w, func(content []byte, err error) {
		if err != nil {
			t.SetStatus("Error reading credentials")
			dialog.ShowError(err, t.w)
			return
		}
		if len(content) == 0 {
			return
		}
		t.binder.SetCredentials(content)
		t.loader.InvalidateAll()
		t.SetStatus("Credentials loaded")
		if strings.TrimSpace(t.urlEntry.Text) != "" {
			t.reload(false)
		}
	})
	cd.Show()
}

// reload runs the load-and-render pipeline from the cache. force drops
// the memoized entry first so the remote service is hit again.
func (t *MainWindow) reload(force bool) {
	locator := strings.TrimSpace(t.urlEntry.Text)
	sheet := strings.TrimSpace(t.sheetEntry.Text)
	if locator == "" {
		t.SetStatus("Enter a spreadsheet URL to begin")
		return
	}
	if sheet == "" {
		sheet = "Sheet1"
	}

	if force {
		t.loader.Invalidate(locator, sheet)
	}

	c := make(chan bool)
	go func(c chan bool) {
		pbi := widget.NewProgressBarInfinite()
		di := dialog.NewCustomWithoutButtons("Loading data...", pbi, t.w)
		di.Resize(fyne.NewSize(300, 100))
		di.Show()
		pbi.Start()
		for {
			select {
			case <-c:
				di.Hide()
				pbi.Stop()
				return
			default:
				time.Sleep(time.Millisecond * 500)
			}
		}
	}(c)

	table, err := t.loader.Load(context.Background(), locator, sheet)
	c <- true

	if err != nil {
		t.showLoadError(err)
		return
	}

	if table.Empty() {
		t.table = nil
		t.body.Objects = []fyne.CanvasObject{container.NewCenter(
			widget.NewLabel("Sheet is empty or has no data"))}
		t.body.Refresh()
		t.SetStatus("Sheet is empty")
		t.restartAutoRefresh()
		return
	}

	t.table = table
	t.dataTab.SetTable(table)
	t.chartsTab.SetTable(table)
	t.analyticsTab.SetTable(table)

	t.body.Objects = []fyne.CanvasObject{t.tabs}
	t.body.Refresh()

	t.SetStatus(fmt.Sprintf("Data loaded: %d rows x %d columns at %s",
		table.RowCount(), table.ColumnCount(), time.Now().Format("15:04:05")))
	t.restartAutoRefresh()
}

// showLoadError surfaces a load failure and falls back to the empty state.
func (t *MainWindow) showLoadError(err error) {
	log.Printf("Error loading sheet: %v", err)

	var authErr *gsheet.AuthError
	if errors.As(err, &authErr) {
		t.SetStatus("Authentication failed - check the service account key")
	} else {
		t.SetStatus("Failed to load data - check the URL and permissions")
	}
	dialog.ShowError(err, t.w)

	t.table = nil
	t.body.Objects = []fyne.CanvasObject{t.welcome}
	t.body.Refresh()
}

// startAutoRefresh launches the countdown that fires a forced reload.
// The timer callbacks arrive on the countdown goroutine, so widget
// updates and the reload itself are handed to the event loop via fyne.Do.
func (t *MainWindow) startAutoRefresh() {
	t.stopAutoRefresh()
	t.refreshTimer = StartRefreshTimer(RefreshInterval, time.Second,
		func(remaining time.Duration) {
			fyne.Do(func() {
				t.countdown.SetText("Next refresh in " + formatCountdown(remaining))
			})
		},
		func() {
			fyne.Do(func() {
				t.reload(true)
			})
		},
	)
	t.countdown.SetText("Next refresh in " + formatCountdown(RefreshInterval))
}

func (t *MainWindow) stopAutoRefresh() {
	if t.refreshTimer != nil {
		t.refreshTimer.Stop()
		t.refreshTimer = nil
	}
	t.countdown.SetText("")
}

// restartAutoRefresh re-arms the countdown after a completed load.
func (t *MainWindow) restartAutoRefresh() {
	if t.autoRefresh.Checked {
		t.startAutoRefresh()
	}
}

// ReadCredentialsFile loads a service account key from disk.
func ReadCredentialsFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading credentials file: %w", err)
	}
	return content, nil
}
