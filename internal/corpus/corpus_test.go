package corpus

import (
	"strings"
	"testing"
)

const sampleDiff = `diff --git a/functions.php b/functions.php
index 1111111..2222222 100644
--- a/functions.php
+++ b/functions.php
@@ -10,3 +10,5 @@ function setup() {
 	existing line
-	removed line
+	echo $_GET['name'];
+	$total = 0;
diff --git a/new-file.php b/new-file.php
new file mode 100644
--- /dev/null
+++ b/new-file.php
@@ -0,0 +1,2 @@
+<?php
++$x; // line starting with + after the marker
`

func TestBuildExtractsAddedLines(t *testing.T) {
	lines := Build(sampleDiff)
	want := []string{
		"\techo $_GET['name'];",
		"\t$total = 0;",
		"<?php",
		"+$x; // line starting with + after the marker",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d: %+v", len(lines), len(want), lines)
	}
	for i, w := range want {
		if lines[i].Text != w {
			t.Errorf("line %d = %q, want %q", i, lines[i].Text, w)
		}
		if lines[i].Index != i+1 {
			t.Errorf("line %d has index %d, want %d", i, lines[i].Index, i+1)
		}
	}
}

func TestBuildSkipsFileHeaders(t *testing.T) {
	for _, line := range Build(sampleDiff) {
		if strings.HasPrefix(line.Text, "++ b/") {
			t.Fatalf("file header leaked into corpus: %q", line.Text)
		}
	}
}

func TestBuildEmptyDiff(t *testing.T) {
	if lines := Build(""); lines != nil {
		t.Fatalf("empty diff must yield empty corpus, got %+v", lines)
	}
	if lines := Build("--- a/x\n+++ b/x\n context only\n-removed\n"); len(lines) != 0 {
		t.Fatalf("diff with no additions must yield empty corpus, got %+v", lines)
	}
}

func TestBuildOrderSpansFiles(t *testing.T) {
	lines := Build(sampleDiff)
	// Corpus order follows diff stream order across file boundaries; the
	// corpus itself keeps no per-file attribution.
	if lines[1].Text != "\t$total = 0;" || lines[2].Text != "<?php" {
		t.Fatalf("order across files broken: %+v", lines)
	}
}
