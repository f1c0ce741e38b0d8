package filter

import (
	"testing"

	"patrol/internal/model"
)

func TestIncludeSegmentExact(t *testing.T) {
	f := Default()
	tests := []struct {
		path string
		want bool
	}{
		{"lib/vendor/file.php", false},
		{"lib/vendored/file.php", true},
		{"vendor/autoload.php", false},
		{"vendor", false}, // path equal to an excluded dir name, no subpath
		{"buildings/plan.php", true},
		{"build/output.js", false},
		{"src/builder.php", true},
		{"a/b/node_modules/c.js", false},
		{"src/app.php", true},
		{"./src/app.php", true},
		{"", false},
	}
	for _, tt := range tests {
		if got := f.Include(tt.path); got != tt.want {
			t.Errorf("Include(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIncludeCaseSensitiveDirs(t *testing.T) {
	f := Default()
	if !f.Include("Vendor/file.php") {
		t.Error("directory exclusion must be case-sensitive")
	}
}

func TestIncludeSuffixes(t *testing.T) {
	f := Default()
	tests := []struct {
		path string
		want bool
	}{
		{"assets/app.min.js", false},
		{"assets/app.js", true},
		{"styles/site.min.css", false},
		{"bundle.js.map", false},
		{"composer.lock", false},
		{"mining.js", true},
	}
	for _, tt := range tests {
		if got := f.Include(tt.path); got != tt.want {
			t.Errorf("Include(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestIncludeExtras(t *testing.T) {
	f := New([]string{"generated"}, []string{".pb.go"})
	if f.Include("generated/code.php") {
		t.Error("extra excluded dir not applied")
	}
	if f.Include("api/service.pb.go") {
		t.Error("extra excluded suffix not applied")
	}
	if !f.Include("src/app.php") {
		t.Error("defaults broken by extras")
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	f := Default()
	in := []model.ChangedPath{
		{Path: "z.php", Kind: model.ChangeModified},
		{Path: "vendor/lib.php", Kind: model.ChangeAdded},
		{Path: "a.php", Kind: model.ChangeAdded},
	}
	out := f.Apply(in)
	if len(out) != 2 || out[0].Path != "z.php" || out[1].Path != "a.php" {
		t.Fatalf("Apply = %+v, want z.php then a.php", out)
	}
}
