package arbor

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RunConfig configures the window and game loop created by Run.
type RunConfig struct {
	Title   string `yaml:"title"`
	Width   int    `yaml:"width"`
	Height  int    `yaml:"height"`
	TPS     int    `yaml:"tps"`
	ShowFPS bool   `yaml:"show_fps"`
	Debug   bool   `yaml:"debug"`

	ClearColor Color        `yaml:"clear_color"`
	Camera     CameraConfig `yaml:"camera"`
}

// CameraConfig holds the initial camera placement.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FovY     float32    `yaml:"fov_y"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// DefaultRunConfig returns a 640x480 window at 60 TPS with the camera at
// (0, 0, 10) looking at the origin.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Title:  "arbor",
		Width:  640,
		Height: 480,
		TPS:    60,
		Camera: CameraConfig{
			Position: [3]float32{0, 0, 10},
			FovY:     45,
			Near:     0.1,
			Far:      1000,
		},
	}
}

// LoadRunConfig decodes a YAML run configuration. Fields absent from the
// document keep their DefaultRunConfig values.
func LoadRunConfig(r io.Reader) (RunConfig, error) {
	cfg := DefaultRunConfig()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && err != io.EOF {
		return DefaultRunConfig(), errors.Wrap(err, "decode run config")
	}
	if err := cfg.validate(); err != nil {
		return DefaultRunConfig(), err
	}
	return cfg, nil
}

func (c RunConfig) validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return errors.Errorf("run config: invalid window size %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return errors.Errorf("run config: invalid tps %d", c.TPS)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return errors.Errorf("run config: invalid clip planes near=%v far=%v", c.Camera.Near, c.Camera.Far)
	}
	return nil
}

// apply configures the scene camera and flags from c.
func (c RunConfig) apply(s *Scene) {
	cam := s.Camera()
	cam.Position = mgl32.Vec3(c.Camera.Position)
	cam.Target = mgl32.Vec3(c.Camera.Target)
	if c.Camera.FovY > 0 {
		cam.FovY = c.Camera.FovY
	}
	cam.Near = c.Camera.Near
	cam.Far = c.Camera.Far
	cam.Viewport = Rect{Width: float32(c.Width), Height: float32(c.Height)}
	if c.ClearColor.A > 0 {
		s.ClearColor = c.ClearColor
	}
	if c.Debug {
		s.SetDebugMode(true)
	}
	if c.ShowFPS {
		_ = s.Root().AddChild(NewFPSOverlay(s))
	}
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene *Scene
}

func (g *game) Update() error {
	return g.scene.Update()
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scene.Camera().Viewport = Rect{Width: float32(outsideWidth), Height: float32(outsideHeight)}
	return outsideWidth, outsideHeight
}

// Run opens a window and drives the scene until the window closes or the
// update callback returns an error.
func Run(scene *Scene, cfg RunConfig) error {
	if err := cfg.validate(); err != nil {
		return err
	}
	cfg.apply(scene)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetTPS(cfg.TPS)
	return ebiten.RunGame(&game{scene: scene})
}
