package mcxgo

import "testing"

func TestDebugLogOnceFiresOnlyOnce(t *testing.T) {
	prevDebug := Debug
	Debug = true
	defer func() { Debug = prevDebug }()

	key := "test-log-once-key"
	delete(logOnce, key)

	if logOnce[key] {
		t.Fatalf("key should not be marked before first call")
	}
	DebugLogOnce(key, "first call")
	if !logOnce[key] {
		t.Fatalf("key should be marked after first call")
	}
	DebugLogOnce(key, "second call should be suppressed")
}

func TestDebugLogNoOpWhenDisabled(t *testing.T) {
	prevDebug := Debug
	Debug = false
	defer func() { Debug = prevDebug }()
	// Should not panic or write anything observable; this just exercises
	// the early-return path.
	DebugLog("this should not appear: %d", 42)
}
