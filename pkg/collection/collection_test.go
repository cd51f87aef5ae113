package collection

import "testing"

func TestParseType(t *testing.T) {
	tests := map[string]Type{
		"events":   TypeEvents,
		"Event":    TypeEvents,
		"aigoal":   TypeAIGoals,
		"ai-goals": TypeAIGoals,
		" party ":  TypeParties,
		"task":     TypeRecurring,
	}
	for in, want := range tests {
		got, err := ParseType(in)
		if err != nil {
			t.Fatalf("ParseType(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseType(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseType("notes"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestUnmarshalListAcceptsPlainNames(t *testing.T) {
	metas, err := UnmarshalList([]byte(`["events","friends"]`))
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(metas) != 2 || metas[0].Name != TypeEvents || metas[1].Name != TypeFriends {
		t.Fatalf("unexpected metas %+v", metas)
	}
	data, err := MarshalList(metas)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	again, err := UnmarshalList(data)
	if err != nil || len(again) != 2 {
		t.Fatalf("round trip: %v %+v", err, again)
	}
}
