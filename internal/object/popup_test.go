package object

import (
	"testing"
	"time"

	"github.com/tomz197/steady/internal/loop/config"
	"github.com/tomz197/steady/internal/scene"
)

func TestPopupRisesAndExpires(t *testing.T) {
	p := NewPopup(100, 200, "+3", scene.Green, time.Second)

	var f scene.Frame
	if remove, _ := p.Update(UpdateContext{Now: time.Second}); remove {
		t.Fatalf("new popup removed")
	}
	p.Draw(DrawContext{Frame: &f})
	if len(f.Labels) != 1 || f.Labels[0].Y != 200 || f.Labels[0].Color != scene.Green {
		t.Fatalf("fresh popup label %+v", f.Labels)
	}

	half := time.Second + config.PopupLifetime/2
	p.Update(UpdateContext{Now: half})
	f = scene.Frame{}
	p.Draw(DrawContext{Frame: &f})
	l := f.Labels[0]
	if l.Y >= 200 || l.Color == scene.Green {
		t.Fatalf("popup should rise and fade, got %+v", l)
	}

	if remove, _ := p.Update(UpdateContext{Now: time.Second + config.PopupLifetime}); !remove {
		t.Fatalf("popup outlived its lifetime")
	}
}
