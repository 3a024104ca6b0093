package main

import (
	"embed"
	"log"
	"os"

	"focal/internal/app"
	"focal/internal/infrastructure/logging"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/logger"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/options/mac"
	"github.com/wailsapp/wails/v2/pkg/options/windows"
)

//go:embed all:frontend/dist
var assets embed.FS

func main() {
	env := os.Getenv("FOCAL_ENVIRONMENT")
	if env == "" {
		env = "production"
	}

	// Persistence is non-negotiable: a database that cannot be opened
	// or migrated aborts startup.
	application, err := app.NewApp(env)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}

	err = wails.Run(&options.App{
		Title:             "focal",
		Width:             320,
		Height:            200,
		MinWidth:          280,
		MinHeight:         180,
		MaxWidth:          400,
		MaxHeight:         300,
		DisableResize:     false,
		Fullscreen:        false,
		Frameless:         true,
		StartHidden:       false,
		HideWindowOnClose: false,
		AlwaysOnTop:       true,
		BackgroundColour:  &options.RGBA{R: 0, G: 0, B: 0, A: 0},
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Menu:             nil,
		Logger:           logging.NewWailsLoggerAdapter(application.GetLogger()),
		LogLevel:         logger.INFO,
		OnStartup:        application.Startup,
		OnDomReady:       application.DomReady,
		OnBeforeClose:    application.BeforeClose,
		OnShutdown:       application.Shutdown,
		WindowStartState: options.Normal,
		Bind: []interface{}{
			application,
		},
		Windows: &windows.Options{
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
			DisableWindowIcon:    true,
			WebviewUserDataPath:  "",
			ZoomFactor:           1.0,
			BackdropType:         windows.Mica,
		},
		Mac: &mac.Options{
			TitleBar: &mac.TitleBar{
				TitlebarAppearsTransparent: true,
				HideTitle:                  false,
				HideTitleBar:               false,
				FullSizeContent:            false,
				UseToolbar:                 false,
				HideToolbarSeparator:       true,
			},
			Appearance:           mac.NSAppearanceNameDarkAqua,
			WebviewIsTransparent: true,
			WindowIsTranslucent:  true,
		},
	})

	if err != nil {
		log.Fatal(err)
	}
}
