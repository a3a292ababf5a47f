package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/issue9/assert"
)

func TestRun_InvalidMode(t *testing.T) {
	a := assert.New(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-mode", "crf", "北京"}, strings.NewReader(""), &stdout, &stderr)
	a.Equal(code, 2)
	a.Equal(stdout.Len(), 0)
	a.True(strings.Contains(stderr.String(), `segmenter: invalid mode: "crf"`))
}

func TestRun_BadFlag(t *testing.T) {
	a := assert.New(t)
	var stdout, stderr bytes.Buffer

	a.Equal(run([]string{"-nope"}, strings.NewReader(""), &stdout, &stderr), 2)
	a.Equal(stdout.Len(), 0)
}

func TestRun_Output(t *testing.T) {
	a := assert.New(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-mode", "default", "-format", "json", "南京市长江大桥"}, nil, &stdout, &stderr)
	a.Equal(code, 0)
	a.Equal(stdout.String(), "[\"南京市\",\"长江大桥\"]\n")

	stdout.Reset()
	code = run([]string{"-func", "suggest", "中出"}, nil, &stdout, &stderr)
	a.Equal(code, 0)
	a.Equal(stdout.String(), "348\n")

	// the tag function rejects the full mode
	stdout.Reset()
	stderr.Reset()
	code = run([]string{"-func", "tag", "-mode", "all", "北京"}, nil, &stdout, &stderr)
	a.Equal(code, 1)
	a.True(strings.Contains(stderr.String(), "invalid mode"))
}

func TestRun_Interactive(t *testing.T) {
	a := assert.New(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-mode", "default", "-format", "plain"}, strings.NewReader("我爱北京天安门\n\n南京市长江大桥\n"), &stdout, &stderr)
	a.Equal(code, 0)
	a.Equal(stdout.String(), "我 爱 北京 天安门\n南京市 长江大桥\n")
}
