package store_test

import (
	"context"
	"testing"

	"lookout/internal/store"
	"lookout/internal/testsupport"
)

func TestOpenReportsFreshInstallOnce(t *testing.T) {
	cfg := testsupport.NewConfig(t)

	st, created, err := store.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if !created {
		t.Fatal("first open should report a fresh install")
	}
	if err := st.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	st, created, err = store.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()
	if created {
		t.Fatal("second open must not report a fresh install")
	}
}

func TestSeedDefaultsRoundTrip(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	if err := st.Seed(ctx, store.Defaults("Inbox")); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	audio, err := st.GetBool(ctx, store.KeyAudioActive, false)
	if err != nil {
		t.Fatalf("GetBool audioActive: %v", err)
	}
	if !audio {
		t.Fatal("audioActive default should be true")
	}

	show, err := st.GetBool(ctx, store.KeyShowNotification, false)
	if err != nil {
		t.Fatalf("GetBool showNotification: %v", err)
	}
	if !show {
		t.Fatal("showNotification default should be true")
	}

	file, err := st.GetString(ctx, store.KeyAudioFile, "")
	if err != nil {
		t.Fatalf("GetString audioFile: %v", err)
	}
	if file != store.DefaultAudioFile {
		t.Fatalf("audioFile = %q, want %q", file, store.DefaultAudioFile)
	}

	volume, err := st.GetInt(ctx, store.KeyVolumePercent, 0)
	if err != nil {
		t.Fatalf("GetInt volumePercent: %v", err)
	}
	if volume != 100 {
		t.Fatalf("volumePercent = %d, want 100", volume)
	}

	counter, err := st.GetInt(ctx, store.KeyCounter, -1)
	if err != nil {
		t.Fatalf("GetInt counter: %v", err)
	}
	if counter != 0 {
		t.Fatalf("counter = %d, want 0", counter)
	}

	baseline, err := st.GetString(ctx, store.KeyLastTitle, "")
	if err != nil {
		t.Fatalf("GetString lastTitle: %v", err)
	}
	if baseline != "Inbox" {
		t.Fatalf("lastTitle = %q, want empty-state label", baseline)
	}
}

func TestSeedNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	if err := st.SetInt(ctx, store.KeyVolumePercent, 25); err != nil {
		t.Fatalf("SetInt: %v", err)
	}
	if err := st.Seed(ctx, store.Defaults("Inbox")); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	volume, err := st.GetInt(ctx, store.KeyVolumePercent, 0)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if volume != 25 {
		t.Fatalf("volumePercent = %d, seeding overwrote an explicit value", volume)
	}
}

func TestOpenSourcePageFallsBackFalse(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	if err := st.Seed(ctx, store.Defaults("Inbox")); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	open, err := st.GetBool(ctx, store.KeyOpenSourcePage, false)
	if err != nil {
		t.Fatalf("GetBool openSourcePage: %v", err)
	}
	if open {
		t.Fatal("openSourcePage must read false when never set")
	}
}

func TestTypedGettersTolerateGarbage(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	if err := st.SetString(ctx, store.KeyVolumePercent, "loud"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	volume, err := st.GetInt(ctx, store.KeyVolumePercent, 100)
	if err != nil {
		t.Fatalf("GetInt: %v", err)
	}
	if volume != 100 {
		t.Fatalf("GetInt on garbage = %d, want fallback", volume)
	}

	if err := st.SetString(ctx, store.KeyAudioActive, "maybe"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	active, err := st.GetBool(ctx, store.KeyAudioActive, true)
	if err != nil {
		t.Fatalf("GetBool: %v", err)
	}
	if !active {
		t.Fatal("GetBool on garbage should return fallback")
	}
}

func TestAllListsEverything(t *testing.T) {
	ctx := context.Background()
	st := testsupport.MustOpenStore(t, testsupport.NewConfig(t))

	if err := st.Seed(ctx, store.Defaults("Inbox")); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	values, err := st.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(values) != 6 {
		t.Fatalf("All returned %d settings, want 6 seeded keys", len(values))
	}
	if _, ok := values[store.KeyOpenSourcePage]; ok {
		t.Fatal("openSourcePage should not be present until set")
	}
}
