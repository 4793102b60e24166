package resource_test

import (
	"errors"
	"image"
	"testing"
	"testing/fstest"

	"github.com/golang/mock/gomock"

	"github.com/mzki/puzzlescene/filesystem"
	"github.com/mzki/puzzlescene/resource"
	"github.com/mzki/puzzlescene/scene"
	mock_scene "github.com/mzki/puzzlescene/scene/mock"
)

var testdata = &filesystem.Dir{Root: "testdata"}

func TestLoadManifest(t *testing.T) {
	m, err := resource.LoadManifest(testdata, "resource.toml")
	if err != nil {
		t.Fatal(err)
	}

	sp, err := m.Sprite("hero")
	if err != nil {
		t.Fatal(err)
	}
	if expect := (scene.Sprite{Name: "hero", Frames: 4, Size: image.Pt(32, 48)}); sp != expect {
		t.Errorf("got %+v, expect %+v", sp, expect)
	}
	if _, err := m.Sound("beep"); err != nil {
		t.Error(err)
	}
	if _, err := m.Background("lab"); err != nil {
		t.Error(err)
	}
	for _, err := range []error{
		func() error { _, err := m.Sprite("ghost"); return err }(),
		func() error { _, err := m.Sound("ghost"); return err }(),
		func() error { _, err := m.Background("ghost"); return err }(),
	} {
		if !errors.Is(err, scene.ErrResourceNotFound) {
			t.Errorf("missing resource must be ErrResourceNotFound, got %v", err)
		}
	}
	if names := m.SpriteNames(); len(names) != 2 || names[0] != "hero" || names[1] != "lamp" {
		t.Errorf("unexpected sprite names %v", names)
	}
}

func TestLoadManifestInvalid(t *testing.T) {
	fsys := filesystem.FromFS(fstest.MapFS{
		"negative.toml": {Data: []byte("[sprites.a]\nframes = -1\n[sprites.b]\nwidth = -2\n")},
		"typo.toml":     {Data: []byte("[sprites.a]\nframe = 1\n")},
	})
	if _, err := resource.LoadManifest(fsys, "negative.toml"); !errors.Is(err, resource.ErrInvalidManifest) {
		t.Errorf("negative values must be invalid, got %v", err)
	}
	if _, err := resource.LoadManifest(fsys, "typo.toml"); err == nil {
		t.Errorf("unknown key must be error")
	}
}

func TestCacheResolvesOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mock_scene.NewMockCatalog(ctrl)
	backend.EXPECT().Sprite("hero").Return(scene.Sprite{Name: "hero", Frames: 1}, nil).Times(1)
	backend.EXPECT().Sound("beep").Return(scene.Sound{Name: "beep"}, nil).Times(1)
	backend.EXPECT().Background("ghost").Return(scene.Background{}, scene.ErrResourceNotFound).Times(2)

	c := resource.NewCache(backend, 8)
	for i := 0; i < 3; i++ {
		if sp, err := c.Sprite("hero"); err != nil || sp.Name != "hero" {
			t.Errorf("got %v, %v", sp, err)
		}
		if _, err := c.Sound("beep"); err != nil {
			t.Error(err)
		}
	}
	for i := 0; i < 2; i++ {
		if _, err := c.Background("ghost"); !errors.Is(err, scene.ErrResourceNotFound) {
			t.Errorf("error must be passed through, got %v", err)
		}
	}

	if c.Len() != 2 {
		t.Errorf("failed lookup must not be cached, got len %v", c.Len())
	}
	if st := c.Stats(); st.Hits != 4 || st.Misses != 4 {
		t.Errorf("unexpected stats %+v", st)
	}
}

func TestCacheEviction(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	backend := mock_scene.NewMockCatalog(ctrl)
	backend.EXPECT().Sound(gomock.Any()).DoAndReturn(func(name string) (scene.Sound, error) {
		return scene.Sound{Name: name}, nil
	}).Times(4)

	c := resource.NewCache(backend, 2)
	c.Sound("a")
	c.Sound("b")
	c.Sound("c") // evicts a
	c.Sound("a") // resolved again
	if c.Len() != 2 {
		t.Errorf("cache must be bounded, got %v", c.Len())
	}

	c.Purge()
	if c.Len() != 0 {
		t.Errorf("purged cache must be empty")
	}
}

func TestLoadWithConfig(t *testing.T) {
	config := resource.NewConfig()
	cat, m, err := resource.Load(testdata, config)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("manifest must be returned")
	}

	// cached catalog works as scene catalog.
	_, err = scene.Compile(scene.Seq(
		scene.Place{Actor: 1, Sprite: "hero", Frame: 3},
		scene.PlaySound{Sound: "beep"},
		scene.SetBackground{Name: "lab"},
	), cat)
	if err != nil {
		t.Errorf("compile with manifest catalog failed: %v", err)
	}

	for _, c := range []resource.Config{
		{Manifest: "", CacheSize: 1},
		{Manifest: "a.toml", CacheSize: -1},
	} {
		if err := c.Validate(); err == nil {
			t.Errorf("config %+v must be invalid", c)
		}
	}
}
