// Command cityview opens the portfolio city in a native window. It runs the
// same scene model the site serves, with raylib standing in for the browser
// renderer.
package main

import (
	"fmt"
	"os"
	"strings"

	"cogentcore.org/core/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"sipkagroup/server/internal/catalog"
	"sipkagroup/server/internal/scene"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		width     int
		height    int
		userAgent string
		baseURL   string
		logLevel  string
	)

	cmd := &cobra.Command{
		Use:          "cityview",
		Short:        "Preview the portfolio city scene in a window",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			logger.SetOutput(os.Stdout)
			if level, err := logrus.ParseLevel(logLevel); err == nil {
				logger.SetLevel(level)
			}
			return run(width, height, userAgent, strings.TrimRight(baseURL, "/"), logger)
		},
	}

	cmd.Flags().IntVar(&width, "width", 1280, "Window width; below 768 previews the constrained mode")
	cmd.Flags().IntVar(&height, "height", 720, "Window height")
	cmd.Flags().StringVar(&userAgent, "ua", "", "User agent used for quality selection")
	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:5250", "Site address building clicks resolve against")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	return cmd
}

func run(width, height int, userAgent, baseURL string, logger *logrus.Logger) error {
	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	profile := scene.ResolveProfile(width, userAgent)

	if profile.Antialias {
		rl.SetConfigFlags(rl.FlagMsaa4xHint)
	}
	rl.InitWindow(int32(width), int32(height), "Sipka Group - Portfolio")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	gpu := newGPUAllocator()
	var status string
	navigate := func(path string) {
		status = "Opening " + baseURL + path
		logger.WithField("url", baseURL+path).Info("Building selected")
	}

	loop := scene.Mount(cat.All(), profile, gpu, navigate, logger)
	defer func() {
		loop.Unmount()
		if n := gpu.Live(); n != 0 {
			logger.WithField("live", n).Warn("GPU resources still allocated after unmount")
		}
	}()

	if profile.PostProcessing {
		logger.WithField("effects", len(loop.Scene().Effects)).Info("Post-processing effects are not rendered in the preview")
	}

	r := newRenderer(gpu, loop)
	var frame scene.Frame
	cam := r.camera(scene.CameraState{Position: loop.Scene().Camera.Position, LookAt: loop.Scene().Camera.LookAt})

	for !rl.WindowShouldClose() {
		handleInput(loop, cam, width, height)

		// On demand mode the window sleeps between input events once every
		// building has settled
		if profile.FrameLoop == scene.FrameLoopDemand {
			if loop.NeedsFrame() {
				rl.DisableEventWaiting()
			} else {
				rl.EnableEventWaiting()
			}
		}
		if loop.NeedsFrame() {
			frame = loop.Tick(float32(rl.GetTime()))
			cam = r.camera(frame.Camera)
		}

		if frame.Cursor == "pointer" {
			rl.SetMouseCursor(rl.MouseCursorPointingHand)
		} else {
			rl.SetMouseCursor(rl.MouseCursorDefault)
		}

		rl.BeginDrawing()
		r.draw(frame, cam)
		if status != "" {
			rl.DrawText(status, 10, int32(height)-30, 20, rl.LightGray)
		}
		rl.EndDrawing()
	}
	return nil
}

func handleInput(loop *scene.Loop, cam rl.Camera3D, width, height int) {
	mouse := rl.GetMousePosition()
	delta := rl.GetMouseDelta()
	if delta.X != 0 || delta.Y != 0 {
		loop.PointerMove(mouse.X/float32(width)*2-1, -(mouse.Y/float32(height)*2 - 1))
	}

	ray := rl.GetScreenToWorldRay(mouse, cam)
	hit := loop.Pick(
		math32.Vec3(ray.Position.X, ray.Position.Y, ray.Position.Z),
		math32.Vec3(ray.Direction.X, ray.Direction.Y, ray.Direction.Z),
	)
	loop.Hover(hit)

	if hit >= 0 && rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		loop.Click(hit)
	}
}
