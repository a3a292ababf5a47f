package store

import (
	"testing"

	"github.com/issue9/assert"

	"github.com/teatak/fenci/dictionary"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_PutRemove(t *testing.T) {
	a := assert.New(t)
	s := openMemory(t)

	a.NotError(s.Put(dictionary.Entry{Word: "中出", Freq: 348, Tag: "v"}))
	a.NotError(s.Put(dictionary.Entry{Word: "云计算", Freq: 20}))
	a.NotError(s.Remove("叛徒"))

	entries, err := s.Entries()
	a.NotError(err)
	a.Equal(entries, []dictionary.Entry{
		{Word: "中出", Freq: 348, Tag: "v"},
		{Word: "云计算", Freq: 20},
	})
	removed, err := s.Removed()
	a.NotError(err)
	a.Equal(removed, []string{"叛徒"})

	text, err := s.Dictionary()
	a.NotError(err)
	a.Equal(string(text), "中出 348 v\n云计算 20\n")

	// re-adding a removed word clears the removal and vice versa
	a.NotError(s.Put(dictionary.Entry{Word: "叛徒", Freq: 5}))
	a.NotError(s.Remove("云计算"))
	removed, err = s.Removed()
	a.NotError(err)
	a.Equal(removed, []string{"云计算"})
	entries, err = s.Entries()
	a.NotError(err)
	a.Equal(len(entries), 2)
}

func TestStore_Clear(t *testing.T) {
	a := assert.New(t)
	s := openMemory(t)

	a.NotError(s.Put(dictionary.Entry{Word: "中出", Freq: 348}))
	a.NotError(s.Remove("叛徒"))
	a.NotError(s.Clear())

	entries, err := s.Entries()
	a.NotError(err)
	a.Equal(len(entries), 0)
	removed, err := s.Removed()
	a.NotError(err)
	a.Equal(len(removed), 0)
}

func TestStore_Reopen(t *testing.T) {
	a := assert.New(t)
	dir := t.TempDir()

	s, err := Open(dir)
	a.NotError(err)
	a.NotError(s.Put(dictionary.Entry{Word: "中出", Freq: 348, Tag: "v"}))
	a.NotError(s.Close())

	s, err = Open(dir)
	a.NotError(err)
	defer s.Close()
	entries, err := s.Entries()
	a.NotError(err)
	a.Equal(entries, []dictionary.Entry{{Word: "中出", Freq: 348, Tag: "v"}})
}
