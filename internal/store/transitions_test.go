package store

import "testing"

func TestValidTurnTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		valid  bool
	}{
		{"atender", "en_espera", true},
		{"atender", "en_atencion", false},
		{"completar", "en_atencion", true},
		{"completar", "en_espera", false},
		{"cancelar", "en_espera", true},
		{"cancelar", "atendido", false},
		{"unknown", "en_espera", false},
	}

	for _, tt := range cases {
		if got := ValidTurnTransition(tt.action, tt.from); got != tt.valid {
			t.Fatalf("ValidTurnTransition(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

func TestValidAppointmentTransition(t *testing.T) {
	cases := []struct {
		action string
		from   string
		valid  bool
	}{
		{"iniciar", "confirmada", true},
		{"iniciar", "en_curso", false},
		{"completar", "en_curso", true},
		{"completar", "confirmada", false},
		{"cancelar", "confirmada", true},
		{"cancelar", "completada", false},
		{"no-show", "confirmada", true},
		{"no-show", "cancelada", false},
		{"unknown", "confirmada", false},
	}

	for _, tt := range cases {
		if got := ValidAppointmentTransition(tt.action, tt.from); got != tt.valid {
			t.Fatalf("ValidAppointmentTransition(%q, %q)=%v, want %v", tt.action, tt.from, got, tt.valid)
		}
	}
}

func TestTurnTransitionTargets(t *testing.T) {
	from, to, ok := TurnTransition("atender")
	if !ok || to != "en_atencion" || len(from) != 1 || from[0] != "en_espera" {
		t.Fatalf("unexpected atender transition: from=%v to=%s ok=%v", from, to, ok)
	}
	if _, _, ok := TurnTransition("no-show"); ok {
		t.Fatalf("turns have no no-show action")
	}
}

func TestAppointmentTransitionTargets(t *testing.T) {
	from, to, ok := AppointmentTransition("no-show")
	if !ok || to != "no_show" || len(from) != 1 || from[0] != "confirmada" {
		t.Fatalf("unexpected no-show transition: from=%v to=%s ok=%v", from, to, ok)
	}
}
