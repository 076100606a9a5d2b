package hop

// Frame is the committed post-tick world as seen by a renderer.
// It holds copies only; mutating it has no effect on the session.
type Frame struct {
	Phase     Phase
	Score     int
	Best      int
	Deaths    int
	Tick      int
	Level     float64
	Avatar    AvatarView
	Platforms []PlatformView
}

// AvatarView is the avatar's drawable state.
type AvatarView struct {
	X, Y          float64 // Centre
	Width, Height float64
	OnGround      bool
}

// PlatformView is one platform's drawable state.
type PlatformView struct {
	X       float64 // Horizontal centre
	YCenter float64
	Width   float64
	Height  float64
	Scored  bool
	Hazard  *HazardView
}

// HazardView is a hazard's drawable state.
type HazardView struct {
	X    float64 // Horizontal centre
	Y    float64 // Base, on the platform's top surface
	Size float64
}

// Frame snapshots the session for rendering.
// Only platforms within the render margin of the avatar are included.
func (s *Session) Frame() Frame {
	av := s.world.Avatar
	margin := s.cfg.Field.RenderMargin
	if margin <= 0 {
		margin = s.cfg.Field.ViewWidth
	}
	ground := s.cfg.Field.GroundLevel

	visible := s.world.Field.Visible(av.X-margin, av.X+margin)
	views := make([]PlatformView, 0, len(visible))
	for _, p := range visible {
		v := PlatformView{
			X:       p.CenterX(),
			YCenter: ground + p.Height/2,
			Width:   p.Width,
			Height:  p.Height,
			Scored:  p.Scored,
		}
		if p.HasHazard {
			v.Hazard = &HazardView{
				X:    p.HazardX(),
				Y:    p.Top(ground),
				Size: s.cfg.Collision.HazardSize,
			}
		}
		views = append(views, v)
	}

	return Frame{
		Phase:  s.phase,
		Score:  s.score,
		Best:   s.best,
		Deaths: s.deaths,
		Tick:   s.ticks,
		Level:  s.world.Smoother.Value(),
		Avatar: AvatarView{
			X:        av.X,
			Y:        av.Y,
			Width:    s.cfg.Player.Width,
			Height:   s.cfg.Player.Height,
			OnGround: av.OnGround,
		},
		Platforms: views,
	}
}
