package models

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCategoriesKeepInsertionOrder(t *testing.T) {
	c := NewCategories()
	c.Set("zeta", CategoryResult{Label: "Z", URL: "https://x/z"})
	c.Set("alpha", CategoryResult{Label: "A", URL: "https://x/a", Events: []Event{{Title: "Clinic"}}})
	c.Set("zeta", CategoryResult{Label: "Z2", URL: "https://x/z"})

	if got := strings.Join(c.Keys(), ","); got != "zeta,alpha" {
		t.Errorf("Keys() = %s, want zeta,alpha", got)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}
	want := `{"zeta":{"label":"Z2","url":"https://x/z","events":[]},` +
		`"alpha":{"label":"A","url":"https://x/a","events":[{"title":"Clinic","date":"","time":"","signup_url":""}]}}`
	if string(data) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", data, want)
	}

	var back Categories
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if got := strings.Join(back.Keys(), ","); got != "zeta,alpha" {
		t.Errorf("decoded Keys() = %s, want zeta,alpha", got)
	}
	if r, ok := back.Get("alpha"); !ok || len(r.Events) != 1 {
		t.Errorf("decoded alpha = %+v, %v", r, ok)
	}
}

func TestCategoriesUnmarshalRejectsNonObject(t *testing.T) {
	var c Categories
	if err := json.Unmarshal([]byte(`["a"]`), &c); err == nil {
		t.Error("Unmarshal() expected error for an array")
	}
}

func TestEffectiveSignupURL(t *testing.T) {
	c := Category{URL: "https://x/page"}
	if got := c.EffectiveSignupURL(); got != "https://x/page" {
		t.Errorf("EffectiveSignupURL() = %q, want page URL", got)
	}
	c.SignupURL = "https://x/register"
	if got := c.EffectiveSignupURL(); got != "https://x/register" {
		t.Errorf("EffectiveSignupURL() = %q, want override", got)
	}
}

func TestModeValid(t *testing.T) {
	for _, m := range []Mode{ModeEventSessions, ModeSeasonCards} {
		if !m.Valid() {
			t.Errorf("%q should be valid", m)
		}
	}
	if Mode("calendar").Valid() {
		t.Error("calendar should not be a valid mode")
	}
}
