package voice

import (
	"errors"
	"testing"
)

func TestInterpreter_Interpret(t *testing.T) {
	it := NewInterpreter()

	tests := []struct {
		name   string
		text   string
		kind   Kind
		params []string
	}{
		{"turn on with article", "Turn on the living room light", KindTurnOn, []string{"living room light"}},
		{"turn on without article", "switch on bedroom fan", KindTurnOn, []string{"bedroom fan"}},
		{"activate", "activate the ceiling fan", KindTurnOn, []string{"ceiling fan"}},
		{"turn off", "turn off the front door", KindTurnOff, []string{"front door"}},
		{"shut down", "shut down the kitchen light", KindTurnOff, []string{"kitchen light"}},
		{"brightness", "set the bedroom light brightness to 50", KindSetBrightness, []string{"bedroom light", "50"}},
		{"dim", "dim the living room light to 20", KindSetBrightness, []string{"living room light", "20"}},
		{"temperature", "set the main thermostat to 25 degrees", KindSetTemperature, []string{"main thermostat", "25"}},
		{"temperature singular degree", "set the main thermostat to 25 degree", KindSetTemperature, []string{"main thermostat", "25"}},
		{"status", "what is the status of the front door", KindGetStatus, []string{"front door"}},
		{"status suffix", "check the ceiling fan status", KindGetStatus, []string{"ceiling fan"}},
		{"list", "list all devices", KindListDevices, []string{}},
		{"list question", "what devices do we have", KindListDevices, []string{}},
		{"unknown", "make me a sandwich", KindUnknown, []string{"make me a sandwich"}},
		{"whitespace only", "   ", KindUnknown, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := it.Interpret(tt.text)
			if cmd.Kind != tt.kind {
				t.Fatalf("Kind = %q, want %q", cmd.Kind, tt.kind)
			}
			if len(cmd.Params) != len(tt.params) {
				t.Fatalf("Params = %v, want %v", cmd.Params, tt.params)
			}
			for i := range tt.params {
				if cmd.Params[i] != tt.params[i] {
					t.Errorf("Params[%d] = %q, want %q", i, cmd.Params[i], tt.params[i])
				}
			}
		})
	}
}

func TestInterpreter_Precedence(t *testing.T) {
	it := NewInterpreter()

	// "start" is a turn_on verb; earlier kinds win over later ones, so
	// this must not fall through to anything else.
	cmd := it.Interpret("start the ceiling fan")
	if cmd.Kind != KindTurnOn {
		t.Errorf("Kind = %q, want %q", cmd.Kind, KindTurnOn)
	}

	// "stop" belongs to turn_off even though the target looks like a
	// status query.
	cmd = it.Interpret("stop the fan status check")
	if cmd.Kind != KindTurnOff {
		t.Errorf("Kind = %q, want %q", cmd.Kind, KindTurnOff)
	}
}

func TestInterpreter_AddPattern(t *testing.T) {
	it := NewInterpreter()

	t.Run("extends existing kind", func(t *testing.T) {
		if err := it.AddPattern(KindTurnOn, `power up (?:the )?(.+)`); err != nil {
			t.Fatalf("AddPattern() error = %v", err)
		}
		cmd := it.Interpret("power up the kitchen light")
		if cmd.Kind != KindTurnOn {
			t.Errorf("Kind = %q, want %q", cmd.Kind, KindTurnOn)
		}
	})

	t.Run("creates new kind after built-ins", func(t *testing.T) {
		if err := it.AddPattern("lock", `lock (?:the )?(.+)`); err != nil {
			t.Fatalf("AddPattern() error = %v", err)
		}
		cmd := it.Interpret("lock the front door")
		if cmd.Kind != Kind("lock") {
			t.Errorf("Kind = %q, want lock", cmd.Kind)
		}
		kinds := it.Kinds()
		if kinds[len(kinds)-1] != Kind("lock") {
			t.Errorf("Kinds() ends with %q, want lock", kinds[len(kinds)-1])
		}
	})

	t.Run("rejects invalid expression", func(t *testing.T) {
		if err := it.AddPattern(KindTurnOn, `broken(`); err == nil {
			t.Error("AddPattern() accepted an invalid expression")
		}
	})
}

func TestInterpreter_RemovePattern(t *testing.T) {
	it := NewInterpreter()

	if err := it.RemovePattern(KindTurnOn, `start (?:the )?(.+)`); err != nil {
		t.Fatalf("RemovePattern() error = %v", err)
	}
	cmd := it.Interpret("start the ceiling fan")
	if cmd.Kind != KindUnknown {
		t.Errorf("Kind = %q after removal, want %q", cmd.Kind, KindUnknown)
	}

	if err := it.RemovePattern(KindTurnOn, `no such pattern`); !errors.Is(err, ErrPatternNotFound) {
		t.Errorf("RemovePattern() error = %v, want ErrPatternNotFound", err)
	}
}
