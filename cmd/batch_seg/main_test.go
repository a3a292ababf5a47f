package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/issue9/assert"
)

func TestRun(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	input := filepath.Join(dir, "text.txt")
	output := filepath.Join(dir, "corpus.txt")
	a.NotError(os.WriteFile(input, []byte("我爱北京天安门\n\n  南京市长江大桥 \n用iPhone 12拍照\n"), 0o644))

	a.NotError(run([]string{"-input", input, "-output", output, "-mode", "default"}))
	content, err := os.ReadFile(output)
	a.NotError(err)
	a.Equal(string(content), "我 爱 北京 天安门\n南京市 长江大桥\n用 iPhone 12 拍照\n")
}

func TestRun_Errors(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()
	output := filepath.Join(dir, "corpus.txt")

	err := run([]string{"-mode", "crf", "-output", output})
	a.Error(err)
	a.True(strings.Contains(err.Error(), "invalid mode"))
	_, err = os.Stat(output)
	a.True(os.IsNotExist(err))

	err = run([]string{"-input", filepath.Join(dir, "missing.txt"), "-output", output})
	a.Error(err)
	a.True(strings.Contains(err.Error(), "failed to open input file"))

	a.Error(run([]string{"-unknown"}))
}
