package config

import (
	"testing"
)

func TestCleanPath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "/data/frames", "/data/frames"},
		{"trailing slash", "/data/frames/", "/data/frames"},
		{"multiple trailing slashes", "/data/frames///", "/data/frames"},
		{"surrounding spaces", "  /data/frames ", "/data/frames"},
		{"double quotes", `"/data/frames"`, "/data/frames"},
		{"single quotes", "'/data/frames'", "/data/frames"},
		{"root path", "/", "/"},
		{"relative path", "frames/", "frames"},
		{"empty string", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPath(tt.in)
			if got != tt.want {
				t.Errorf("CleanPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidate_OutputFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  OutputFormat
		wantErr bool
	}{
		{"images is valid", OutputImages, false},
		{"mp4 is valid", OutputMP4, false},
		{"empty is invalid", "", true},
		{"gif is invalid", "gif", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true // skip directory requirement
			cfg.OutputFormat = tt.format
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ImageFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  ImageFormat
		wantErr bool
	}{
		{"png is valid", FormatPNG, false},
		{"jpg is valid", FormatJPG, false},
		{"webp is valid", FormatWebP, false},
		{"empty is invalid", "", true},
		{"bmp is invalid", "bmp", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			cfg.ImageFormat = tt.format
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_NumericRanges(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(c *Config) {}, false},
		{"negative cap", func(c *Config) { c.ImageLoadCap = -1 }, true},
		{"negative skip", func(c *Config) { c.SkipFirstImages = -1 }, true},
		{"zero stride", func(c *Config) { c.SelectEveryNth = 0 }, true},
		{"zero fps", func(c *Config) { c.FrameRate = 0 }, true},
		{"quality 0", func(c *Config) { c.Quality = 0 }, true},
		{"quality 101", func(c *Config) { c.Quality = 101 }, true},
		{"quality 1", func(c *Config) { c.Quality = 1 }, false},
		{"crf -1", func(c *Config) { c.VideoCRF = -1 }, true},
		{"crf 52", func(c *Config) { c.VideoCRF = 52 }, true},
		{"crf 0", func(c *Config) { c.VideoCRF = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.CheckOnly = true
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_RequiresDirectories(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail with no directories")
	}

	cfg.Directories = []string{"/in/a"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidate_MaxPathCount(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxPathCount = 2
	cfg.Directories = []string{"/a", "/b", "/c"}
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should fail when directory count exceeds MaxPathCount")
	}
	cfg.Directories = cfg.Directories[:2]
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}
}

func TestValidatePaths(t *testing.T) {
	tests := []struct {
		name    string
		inputs  []string
		output  string
		wantErr bool
	}{
		{"separate directories", []string{"/media/a", "/media/b"}, "/media/out", false},
		{"output equals an input", []string{"/media/a"}, "/media/a", true},
		{"output inside an input", []string{"/media/a"}, "/media/a/out", true},
		{"output is parent of input", []string{"/media/a/sub"}, "/media/a", false},
		{"similar prefix not nested", []string{"/media/lib"}, "/media/lib2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			err := cfg.ValidatePaths(tt.inputs, tt.output)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePaths(%v, %q) error = %v, wantErr %v",
					tt.inputs, tt.output, err, tt.wantErr)
			}
		})
	}
}

func TestResolvedOutputDir(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.ResolvedOutputDir(); got != "output" {
		t.Errorf("default output dir = %q, want %q", got, "output")
	}
	cfg.OutputDir = " /data/out/ "
	if got := cfg.ResolvedOutputDir(); got != "/data/out" {
		t.Errorf("output dir = %q, want %q", got, "/data/out")
	}
}

func TestVisibleIndices(t *testing.T) {
	tests := []struct {
		name  string
		count int
		max   int
		want  int
	}{
		{"single", 1, 50, 1},
		{"three", 3, 50, 3},
		{"full", 50, 50, 50},
		{"clamped low", 0, 50, 1},
		{"clamped high", 99, 50, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleIndices(tt.count, tt.max)
			if len(got) != tt.want {
				t.Fatalf("len(VisibleIndices(%d, %d)) = %d, want %d", tt.count, tt.max, len(got), tt.want)
			}
			for i, idx := range got {
				if idx != i+1 {
					t.Errorf("VisibleIndices[%d] = %d, want %d", i, idx, i+1)
				}
			}
		})
	}
}

func TestDefaultConfig_SaneDefaults(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxPathCount != 50 {
		t.Errorf("default MaxPathCount = %d, want 50", cfg.MaxPathCount)
	}
	if !cfg.SizeCheck {
		t.Error("default SizeCheck should be true")
	}
	if cfg.SelectEveryNth != 1 {
		t.Errorf("default SelectEveryNth = %d, want 1", cfg.SelectEveryNth)
	}
	if cfg.OutputFormat != OutputImages {
		t.Errorf("default OutputFormat = %q, want %q", cfg.OutputFormat, OutputImages)
	}
	if cfg.ImageFormat != FormatPNG {
		t.Errorf("default ImageFormat = %q, want %q", cfg.ImageFormat, FormatPNG)
	}
	if cfg.FrameRate != 24 {
		t.Errorf("default FrameRate = %d, want 24", cfg.FrameRate)
	}
	if cfg.VideoCRF != 23 {
		t.Errorf("default VideoCRF = %d, want 23", cfg.VideoCRF)
	}
	if cfg.DryRun {
		t.Error("default DryRun should be false")
	}
}
