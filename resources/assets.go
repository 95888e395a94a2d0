package resources

import (
	"embed"
	"fmt"
	"sync"

	"countdown/internal/core/model"

	"fyne.io/fyne/v2"
)

const iconDir = "icons/"

//go:embed icons/*.svg
var iconFS embed.FS

var iconCache sync.Map

// Icon returns a Fyne resource for the given icon file.
func Icon(fileName string) (fyne.Resource, error) {
	return loadResource(iconFS, iconDir+fileName, &iconCache)
}

// MustIcon returns a Fyne resource or panics on error.
func MustIcon(fileName string) fyne.Resource {
	resource, err := Icon(fileName)
	if err != nil {
		panic(err)
	}
	return resource
}

// AppIcon returns the application icon.
func AppIcon() fyne.Resource {
	return MustIcon("app.svg")
}

// StateIcon returns the tray icon for a timer state.
func StateIcon(kind model.StateKind) fyne.Resource {
	switch kind {
	case model.KindActive:
		return MustIcon("active.svg")
	case model.KindPaused:
		return MustIcon("paused.svg")
	default:
		return MustIcon("stopped.svg")
	}
}

func loadResource(fs embed.FS, path string, cache *sync.Map) (fyne.Resource, error) {
	if cached, ok := cache.Load(path); ok {
		return cached.(fyne.Resource), nil
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load resource %s: %w", path, err)
	}

	resource := fyne.NewStaticResource(path, data)
	cache.Store(path, resource)
	return resource, nil
}
