package compiler

import (
	"strconv"

	"github.com/deckforge/deckforge/internal/deck"
)

// bindDirectives assigns each scanned directive to its slide field. When a
// key repeats within one segment the last occurrence wins, so iteration in
// text order with plain assignment is the whole precedence rule. Returns
// whether the slide type was fixed explicitly.
func bindDirectives(slide *deck.SlideConfig, dirs []directive) bool {
	typeSet := false
	for _, d := range dirs {
		switch d.key {
		case "slide":
			t, _ := deck.ParseSlideType(d.value)
			slide.Type = t
			typeSet = true
		case "background":
			slide.Background = d.value
		case "bg-image":
			slide.BgImage = d.value
		case "bg-video":
			slide.BgVideo = d.value
		case "transition":
			tr := &deck.Transition{Kind: d.value}
			if d.hasDuration {
				tr.Duration = d.duration
			}
			slide.Transition = tr
		case "animate":
			an := &deck.Animation{Kind: d.value}
			if d.hasDuration {
				an.Delay = d.duration
			}
			slide.Animation = an
		case "layout":
			slide.Layout = d.value
		case "theme":
			slide.ThemeOverride = d.value
		case "notes", "speaker":
			// Speaker notes are opaque text; no inline-span stripping.
			if d.key == "notes" {
				slide.Notes = d.value
			} else {
				slide.Speaker = d.value
			}
		case "timer":
			if n, err := strconv.Atoi(d.value); err == nil {
				slide.TimerSeconds = n
			}
		case "poll":
			slide.Poll = d.value
		case "qr":
			slide.QR = d.value
		case "include":
			// Recorded only; resolution belongs to the include expander that
			// runs before compilation.
			slide.Includes = append(slide.Includes, d.value)
		default:
			setExtra(slide, d.key, d.value)
		}
	}
	return typeSet
}

// setExtra upserts an unrecognized directive, keeping first-appearance order
// while letting the latest value win.
func setExtra(slide *deck.SlideConfig, key, value string) {
	for i := range slide.Extra {
		if slide.Extra[i].Key == key {
			slide.Extra[i].Value = value
			return
		}
	}
	slide.Extra = append(slide.Extra, deck.ExtraDirective{Key: key, Value: value})
}
