package windows

import (
	"os"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// CredentialsDialog lets the user pick a service-account JSON key file.
type CredentialsDialog struct {
	dialog      dialog.Dialog
	window      fyne.Window
	callback    func([]byte, error)
	fileList    *widget.List
	files       []string
	homeDir     string
	currentPath string
	pathLabel   *widget.Label
}

// NewCredentialsDialog creates a dialog that reads the selected key file
// and hands its contents to callback.
func NewCredentialsDialog(w fyne.Window, callback func([]byte, error)) *CredentialsDialog {
	cd := &CredentialsDialog{
		window:   w,
		callback: callback,
		files:    make([]string, 0),
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	cd.homeDir = homeDir
	cd.currentPath = homeDir

	return cd
}

func (cd *CredentialsDialog) Show() {
	cd.pathLabel = widget.NewLabel(cd.currentPath)
	cd.pathLabel.Wrapping = fyne.TextTruncate
	cd.pathLabel.TextStyle = fyne.TextStyle{Bold: true}

	cd.fileList = widget.NewList(
		func() int {
			return len(cd.files)
		},
		func() fyne.CanvasObject {
			icon := widget.NewIcon(theme.DocumentIcon())
			label := widget.NewLabel("template")
			return container.NewHBox(icon, label)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			cont := obj.(*fyne.Container)
			icon := cont.Objects[0].(*widget.Icon)
			label := cont.Objects[1].(*widget.Label)

			fileName := cd.files[id]
			label.SetText(fileName)

			fullPath := filepath.Join(cd.currentPath, fileName)
			fileInfo, err := os.Stat(fullPath)
			if err == nil && fileInfo.IsDir() {
				icon.SetResource(theme.FolderIcon())
			} else {
				icon.SetResource(theme.DocumentIcon())
			}
		},
	)

	cd.fileList.OnSelected = func(id widget.ListItemID) {
		fileName := cd.files[id]
		fullPath := filepath.Join(cd.currentPath, fileName)

		fileInfo, err := os.Stat(fullPath)
		if err != nil {
			return
		}

		if fileInfo.IsDir() {
			cd.currentPath = fullPath
			cd.loadDirectory()
			cd.fileList.UnselectAll()
			return
		}

		content, err := os.ReadFile(fullPath)
		if err != nil {
			cd.callback(nil, err)
			cd.dialog.Hide()
			return
		}
		cd.callback(content, nil)
		cd.dialog.Hide()
	}

	homeButton := widget.NewButtonWithIcon("Home", theme.HomeIcon(), func() {
		cd.currentPath = cd.homeDir
		cd.loadDirectory()
	})

	upButton := widget.NewButtonWithIcon("Up", theme.NavigateBackIcon(), func() {
		parent := filepath.Dir(cd.currentPath)
		if parent != cd.currentPath {
			cd.currentPath = parent
			cd.loadDirectory()
		}
	})

	refreshButton := widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() {
		cd.loadDirectory()
	})

	filterInfo := widget.NewLabel("Showing: .json files and directories")
	filterInfo.TextStyle = fyne.TextStyle{Italic: true}

	navToolbar := container.NewBorder(
		nil, nil,
		container.NewHBox(homeButton, upButton, refreshButton),
		nil,
		cd.pathLabel,
	)

	instructions := widget.NewRichTextFromMarkdown("**Select a service account key file (.json)**\n\nClick a folder to navigate, or click a file to select it.")
	instructions.Wrapping = fyne.TextWrapWord

	content := container.NewBorder(
		container.NewVBox(
			instructions,
			widget.NewSeparator(),
			navToolbar,
			widget.NewSeparator(),
			filterInfo,
		),
		nil, nil, nil,
		cd.fileList,
	)

	cd.dialog = dialog.NewCustom("Select Service Account Key", "Close", content, cd.window)
	cd.dialog.Resize(fyne.NewSize(800, 600))

	cd.loadDirectory()
	cd.dialog.Show()
}

func (cd *CredentialsDialog) loadDirectory() {
	entries, err := os.ReadDir(cd.currentPath)
	if err != nil {
		dialog.ShowError(err, cd.window)
		return
	}

	cd.files = make([]string, 0)

	// Directories first, then key files.
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			cd.files = append(cd.files, entry.Name())
		}
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			cd.files = append(cd.files, entry.Name())
		}
	}

	cd.pathLabel.SetText(cd.currentPath)
	cd.fileList.Refresh()
}
