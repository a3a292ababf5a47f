package optimizer

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/issue9/assert"

	"github.com/teatak/fenci/data"
	"github.com/teatak/fenci/dictionary"
	"github.com/teatak/fenci/hmm"
)

func loadDict(t *testing.T) *dictionary.Dictionary {
	t.Helper()
	dict := dictionary.NewDictionary()
	if _, err := dict.LoadBase(data.Dictionary); err != nil {
		t.Fatal(err)
	}
	return dict
}

func TestDiscover(t *testing.T) {
	a := assert.New(t)

	counts, err := Discover(strings.NewReader("今天天气很好，今天天气真好\nOK 好\n"), 3)
	a.NotError(err)
	a.Equal(counts["今天"], 2)
	a.Equal(counts["天气"], 2)
	a.Equal(counts["今天天"], 2)
	a.Equal(counts["气很好"], 1)
	a.Equal(counts["今天天气"], 0) // longer than maxGram
	a.Equal(counts["好今"], 0)    // spans punctuation
	_, ok := counts["好"]
	a.False(ok)
}

func TestClean(t *testing.T) {
	a := assert.New(t)

	got := Clean([]Word{
		{Text: "南京", Freq: 10},
		{Text: "南京市", Freq: 10},
		{Text: "长江", Freq: 3},
	}, 0.9)
	a.Equal(got, []Word{{Text: "南京市", Freq: 10}, {Text: "长江", Freq: 3}})

	got = Clean([]Word{
		{Text: "希尔顿", Freq: 100},
		{Text: "城希尔顿", Freq: 10},
		{Text: "希尔顿酒", Freq: 10},
		{Text: "希尔顿店", Freq: 10},
	}, 1000)
	a.Equal(got, []Word{{Text: "希尔顿", Freq: 100}, {Text: "希尔顿店", Freq: 10}})
}

func TestReadWriteWords(t *testing.T) {
	a := assert.New(t)
	input := "中出 3 v\n王伟 2\n中出 4\n，号 9\n坏\n零 0\n"

	words, err := ReadWords(strings.NewReader(input))
	a.NotError(err)
	a.Equal(words, []Word{
		{Text: "中出", Freq: 7, Tag: "v"},
		{Text: "王伟", Freq: 2},
	})

	var buf bytes.Buffer
	a.NotError(WriteWords(&buf, words))
	a.Equal(buf.String(), "中出 7 v\n王伟 2\n")
}

func TestCandidates(t *testing.T) {
	a := assert.New(t)
	dict := loadDict(t)

	got, err := Candidates(dict, map[string]int{
		"说了":  3,
		"中出":  6, // already a word
		"叛徒们": 1, // below threshold
		"王伟":  4,
	}, 2, 0.9)
	a.NotError(err)
	a.Equal(got, []Candidate{
		{Word: "王伟", Count: 4, Freq: 1},
		{Word: "说了", Count: 3, Freq: 3232},
	})
}

func TestStraddlers(t *testing.T) {
	a := assert.New(t)
	dict := loadDict(t)

	got, err := Straddlers(dict, []string{"南京市", "长江大桥"})
	a.NotError(err)
	a.Equal(got, []string{"市长"})

	got, err = Straddlers(dict, []string{"南京市长江大桥"})
	a.NotError(err)
	a.Equal(len(got), 0)
}

func TestTrain(t *testing.T) {
	a := assert.New(t)

	corpus := "王伟/nr 和/c 李强/nr 都 是 程序员/n 。\n\n李强/nr 是/v 程序员/n\n"
	words, model, err := Train(strings.NewReader(corpus))
	a.NotError(err)
	a.Equal(words, []Word{
		{Text: "是", Freq: 2, Tag: "v"},
		{Text: "李强", Freq: 2, Tag: "nr"},
		{Text: "程序员", Freq: 2, Tag: "n"},
		{Text: "和", Freq: 1, Tag: "c"},
		{Text: "王伟", Freq: 1, Tag: "nr"},
		{Text: "都", Freq: 1},
	})
	a.Equal(model.Decode([]rune("王伟")), []int{hmm.StateB, hmm.StateE})
	a.Equal(model.Tag(hmm.StateE), "nr")
}

func TestTrainEmissions(t *testing.T) {
	a := assert.New(t)
	base, err := hmm.Default()
	a.NotError(err)

	lexicon := "\ufeff北京 3 ns\n京 1\n坏行\n李小龙 1 nr\n零 0\n"
	model, err := TrainEmissions(strings.NewReader(lexicon), base)
	a.NotError(err)
	a.Equal(model.Emission(hmm.StateB, '北'), math.Log(3.0/4.0))
	a.Equal(model.Emission(hmm.StateE, '京'), math.Log(3.0/4.0))
	a.Equal(model.Emission(hmm.StateS, '京'), 0.0)
	a.Equal(model.Emission(hmm.StateS, '零'), hmm.MinFloat)
	a.Equal(model.Start, base.Start)
	a.Equal(model.Trans, base.Trans)
	a.Equal(model.Tag(hmm.StateE), "nr")
	a.Equal(model.Decode([]rune("北京")), []int{hmm.StateB, hmm.StateE})
}

// The embedded model's emissions are the ones the embedded dictionary yields.
func TestTrainEmissions_Default(t *testing.T) {
	base, err := hmm.Default()
	if err != nil {
		t.Fatal(err)
	}
	model, err := TrainEmissions(bytes.NewReader(data.Dictionary), base)
	if err != nil {
		t.Fatal(err)
	}
	for s := 0; s < 4; s++ {
		if len(model.Emit[s]) != len(base.Emit[s]) {
			t.Fatalf("state %s has %d emissions, want %d", hmm.StateStr(s), len(model.Emit[s]), len(base.Emit[s]))
		}
		for r, p := range base.Emit[s] {
			if math.Abs(model.Emission(s, r)-p) > 1e-9 {
				t.Errorf("Emission(%s, %c) = %v, want %v", hmm.StateStr(s), r, model.Emission(s, r), p)
			}
		}
	}
}
