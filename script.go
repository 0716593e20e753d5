package timeline

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptTween is a single tween entry in a script.
type scriptTween struct {
	Target   string  `json:"target"`
	From     string  `json:"from,omitempty"`
	To       string  `json:"to"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
	Ease     string  `json:"ease,omitempty"`
	Additive bool    `json:"additive,omitempty"`
}

// scriptEvent is a single event marker entry in a script.
type scriptEvent struct {
	At      string `json:"at"`
	Payload string `json:"payload,omitempty"`
}

// scriptRepeat selects the repeat policy for a scripted timeline.
type scriptRepeat struct {
	Forever bool   `json:"forever,omitempty"`
	Times   int    `json:"times,omitempty"`
	Style   string `json:"style,omitempty"`
}

// Script is a timeline definition loaded from JSON, for data-driven
// animation authoring. Durations are Go duration strings ("750ms", "2s").
// Scripted tweens animate scalar targets; the host supplies them by name
// when building.
type Script struct {
	Duration string        `json:"duration"`
	Repeat   *scriptRepeat `json:"repeat,omitempty"`
	Tweens   []scriptTween `json:"tweens"`
	Events   []scriptEvent `json:"events,omitempty"`
}

// LoadScript parses a JSON timeline script. The result is authored data
// only; call Build to get a runnable timeline.
func LoadScript(data []byte) (*Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse timeline script: %w", err)
	}
	if s.Duration == "" {
		return nil, fmt.Errorf("timeline script: missing duration")
	}
	return &s, nil
}

// Build constructs a timeline from the script. Tween entries resolve their
// target names against targets; naming a target the map does not have is
// an error. A script can be built any number of times, each call returning
// an independent timeline.
func (s *Script) Build(targets map[string]Target[float64]) (*Timeline, error) {
	duration, err := time.ParseDuration(s.Duration)
	if err != nil {
		return nil, fmt.Errorf("timeline script: duration: %w", err)
	}
	tl := New(duration)

	if s.Repeat != nil {
		style, err := styleByName(s.Repeat.Style)
		if err != nil {
			return nil, fmt.Errorf("timeline script: repeat: %w", err)
		}
		if s.Repeat.Forever {
			tl.SetRepeat(Forever(style))
		} else {
			tl.SetRepeat(Times(s.Repeat.Times, style))
		}
	}

	for i, tw := range s.Tweens {
		target, ok := targets[tw.Target]
		if !ok {
			return nil, fmt.Errorf("timeline script: tween %d: unknown target %q", i, tw.Target)
		}
		span, err := s.parseSpan(tw.From, tw.To)
		if err != nil {
			return nil, fmt.Errorf("timeline script: tween %d: %w", i, err)
		}
		easeFn, err := easeByName(tw.Ease)
		if err != nil {
			return nil, fmt.Errorf("timeline script: tween %d: %w", i, err)
		}
		if tw.Additive {
			Animate(tl, span, easeFn, FloatDelta{Start: tw.Start, End: tw.End}, target)
		} else {
			Animate(tl, span, easeFn, FloatBetween(tw.Start, tw.End), target)
		}
	}

	for i, ev := range s.Events {
		at, err := time.ParseDuration(ev.At)
		if err != nil {
			return nil, fmt.Errorf("timeline script: event %d: at: %w", i, err)
		}
		tl.At(at, ev.Payload)
	}

	return tl, nil
}

func (s *Script) parseSpan(from, to string) (Span, error) {
	var start time.Duration
	if from != "" {
		var err error
		start, err = time.ParseDuration(from)
		if err != nil {
			return Span{}, fmt.Errorf("from: %w", err)
		}
	}
	end, err := time.ParseDuration(to)
	if err != nil {
		return Span{}, fmt.Errorf("to: %w", err)
	}
	return NewSpan(start, end)
}

func styleByName(name string) (RepeatStyle, error) {
	switch name {
	case "", "restart":
		return Restart, nil
	case "pingpong":
		return PingPong, nil
	}
	return Restart, fmt.Errorf("unknown repeat style %q", name)
}

// easeNames maps script ease names to curves.
var easeNames = map[string]EaseFunc{
	"linear":       Linear,
	"quadIn":       QuadIn,
	"quadOut":      QuadOut,
	"quadInOut":    QuadInOut,
	"cubicIn":      CubicIn,
	"cubicOut":     CubicOut,
	"cubicInOut":   CubicInOut,
	"quartIn":      QuartIn,
	"quartOut":     QuartOut,
	"quartInOut":   QuartInOut,
	"quintIn":      QuintIn,
	"quintOut":     QuintOut,
	"quintInOut":   QuintInOut,
	"sineIn":       SineIn,
	"sineOut":      SineOut,
	"sineInOut":    SineInOut,
	"circIn":       CircIn,
	"circOut":      CircOut,
	"circInOut":    CircInOut,
	"expoIn":       ExpoIn,
	"expoOut":      ExpoOut,
	"expoInOut":    ExpoInOut,
	"backIn":       BackIn,
	"backOut":      BackOut,
	"backInOut":    BackInOut,
	"elasticIn":    ElasticIn,
	"elasticOut":   ElasticOut,
	"elasticInOut": ElasticInOut,
	"bounceIn":     BounceIn,
	"bounceOut":    BounceOut,
	"bounceInOut":  BounceInOut,
}

func easeByName(name string) (EaseFunc, error) {
	if name == "" {
		return Linear, nil
	}
	fn, ok := easeNames[name]
	if !ok {
		return nil, fmt.Errorf("unknown ease %q", name)
	}
	return fn, nil
}
