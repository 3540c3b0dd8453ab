// Package ui provides the heads-up display for the movement controller.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Flag is one named on/off state shown in the HUD.
type Flag struct {
	Label string
	On    bool
}

// Readout holds the HUD text refreshed at the HUD interval.
type Readout struct {
	Speed    string
	Velocity string
	Moving   bool
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	FlagOn         rl.Color
	FlagOff        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		FlagOn:         rl.Green,
		FlagOff:        rl.White,
		Padding:        10,
		LineHeight:     18,
		LabelWidth:     70,
		FontSize:       14,
		HeaderFontSize: 16,
	}
}

// FlagColor returns the text color for a flag state.
func (t Theme) FlagColor(on bool) rl.Color {
	if on {
		return t.FlagOn
	}
	return t.FlagOff
}
