package main

import (
	"flag"
	"fmt"
	"os"

	"physics-sandbox/internal/config"
	"physics-sandbox/internal/graphics"
	"physics-sandbox/internal/logger"
	"physics-sandbox/internal/sandbox"
)

func main() {
	modelPath := flag.String("model", "", "glTF model used for mesh spawning (required)")
	flag.Parse()
	if *modelPath == "" && flag.NArg() > 0 {
		*modelPath = flag.Arg(0)
	}
	if *modelPath == "" {
		fmt.Fprintln(os.Stderr, "usage: sandbox -model <path.gltf>")
		os.Exit(2)
	}

	prefs, _ := config.Load()
	log := logger.New()

	app, err := sandbox.New(sandbox.Options{
		ModelPath: *modelPath,
		Prefs:     prefs,
		Log:       log,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "sandbox:", err)
		os.Exit(1)
	}

	graphics.Run("physics sandbox", app.Update, app.Draw)
}
