package document

import (
	"reflect"
	"testing"
)

func TestContentsSetGetDelete(t *testing.T) {
	c := NewContents()
	c.Set("a", "one")
	c.Set("b", float64(2))
	c.Set("a", "uno")

	if v, ok := c.Get("a"); !ok || v != "uno" {
		t.Errorf("a = %v, want uno", v)
	}
	if c.Len() != 2 {
		t.Errorf("len = %d, want 2", c.Len())
	}
	if !c.Delete("a") {
		t.Error("expected delete to report removal")
	}
	if c.Delete("a") {
		t.Error("second delete should be a no-op")
	}
	if c.Has("a") {
		t.Error("a should be gone")
	}
}

func TestContentsKeyOrder(t *testing.T) {
	c := NewContents()
	for _, k := range []string{"zebra", "apple", "mango"} {
		c.Set(k, true)
	}

	want := []string{"zebra", "apple", "mango"}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}

	// Overwriting does not move a key; deleting and re-adding appends.
	c.Set("zebra", false)
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys after overwrite = %v, want %v", got, want)
	}
	c.Delete("zebra")
	c.Set("zebra", true)
	want = []string{"apple", "mango", "zebra"}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys after re-add = %v, want %v", got, want)
	}
}

func TestFromMapOrdersKeysDeterministically(t *testing.T) {
	m := map[string]any{"zebra": 1, "apple": 2, "mango": 3}

	want := []string{"apple", "mango", "zebra"}
	for i := 0; i < 10; i++ {
		if got := FromMap(m).Keys(); !reflect.DeepEqual(got, want) {
			t.Fatalf("keys = %v, want %v", got, want)
		}
	}
}

func TestContentsMarshalOrder(t *testing.T) {
	c := NewContents()
	c.Set("zebra", float64(1))
	c.Set("apple", map[string]any{"color": "red"})
	c.Set("mango", nil)

	data, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"zebra":1,"apple":{"color":"red"},"mango":null}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}
}

func TestContentsUnmarshalPreservesOrder(t *testing.T) {
	raw := `{"z": 1, "a": {"nested": true}, "m": [1, 2, 3]}`
	c := NewContents()
	if err := c.UnmarshalJSON([]byte(raw)); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"z", "a", "m"}
	if got := c.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}

	v, _ := c.Get("a")
	m, ok := v.(map[string]any)
	if !ok || m["nested"] != true {
		t.Errorf("nested value = %v", v)
	}
}

func TestContentsRoundTrip(t *testing.T) {
	raw := `{"b":"x","a":{"k":1},"c":[true,null,"s"]}`
	c := NewContents()
	if err := c.UnmarshalJSON([]byte(raw)); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	data, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != raw {
		t.Errorf("round trip = %s, want %s", data, raw)
	}
}

func TestContentsUnmarshalRejectsNonObject(t *testing.T) {
	c := NewContents()
	if err := c.UnmarshalJSON([]byte(`[1,2,3]`)); err == nil {
		t.Error("expected error for array root")
	}
	if err := c.UnmarshalJSON([]byte(`{"broken":`)); err == nil {
		t.Error("expected error for truncated JSON")
	}
}

func TestContentsDottedKeyLiteral(t *testing.T) {
	// A top-level key containing a literal dot must not become nested
	// during serialization.
	c := NewContents()
	c.Set("weird.key", "v")

	data, err := c.MarshalJSON()
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	want := `{"weird.key":"v"}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	back := NewContents()
	if err := back.UnmarshalJSON(data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if v, ok := back.Get("weird.key"); !ok || v != "v" {
		t.Errorf("weird.key = %v, %v", v, ok)
	}
}

func TestContentsCloneIsDeep(t *testing.T) {
	c := NewContents()
	c.Set("obj", map[string]any{"inner": "original"})

	clone := c.Clone()
	v, _ := c.Get("obj")
	v.(map[string]any)["inner"] = "mutated"

	cv, _ := clone.Get("obj")
	if cv.(map[string]any)["inner"] != "original" {
		t.Error("clone shares nested map with original")
	}
}
