package hmm

import (
	"bytes"
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"github.com/issue9/assert"
)

func defaultModel(t *testing.T) *Model {
	t.Helper()
	m, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestModel_Load(t *testing.T) {
	a := assert.New(t)
	m := NewModel()
	content := "# comment\n" +
		"S B -0.5\n" +
		"T B E -0.25\n" +
		"E S 我 -2.5\n" +
		"E S 你 abc\n" + // skipped
		"P S n\n"
	a.NotError(m.Load(strings.NewReader(content)))
	a.Equal(m.Start[StateB], -0.5)
	a.Equal(m.Start[StateS], MinFloat)
	a.Equal(m.Trans[StateB][StateE], -0.25)
	a.Equal(m.Emission(StateS, '我'), -2.5)
	a.Equal(m.Emission(StateS, '你'), MinFloat)
	a.Equal(m.Tag(StateS), "n")
	a.Equal(m.Tag(StateB), "")
}

func TestModel_LoadInvalid(t *testing.T) {
	for _, content := range []string{
		"X B -0.5\n",
		"S Q -0.5\n",
		"T B -0.5\n",
		"E S 我们 -1\n",
	} {
		err := NewModel().Load(strings.NewReader(content))
		if !errors.Is(err, ErrInvalidModel) {
			t.Errorf("Load(%q) error = %v, want ErrInvalidModel", content, err)
		}
	}
}

func TestDecode(t *testing.T) {
	m := defaultModel(t)

	tests := []struct {
		text     string
		expected []int
	}{
		{"王伟", []int{StateB, StateE}},
		{"李小龙", []int{StateB, StateM, StateE}},
		{"和", []int{StateS}},
		{"王伟和李强都是", []int{StateB, StateE, StateS, StateB, StateE, StateS, StateS}},
		{"杭研", []int{StateB, StateE}},
		{"中出了", []int{StateB, StateE, StateS}},
		{"蔡英文", []int{StateB, StateM, StateE}},
		{"", []int{}},
	}
	for _, tt := range tests {
		got := m.Decode([]rune(tt.text))
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("Decode(%q) = %v, want %v", tt.text, got, tt.expected)
		}
	}
}

func TestDecode_UnseenCharacters(t *testing.T) {
	m := defaultModel(t)
	// every emission is MinFloat, so the sequence must still close
	states := m.Decode([]rune("龘龘龘"))
	if last := states[len(states)-1]; last != StateE && last != StateS {
		t.Errorf("last state = %s, want E or S", StateStr(last))
	}
}

func TestCut(t *testing.T) {
	a := assert.New(t)
	m := defaultModel(t)

	words := m.Cut([]rune("王伟和李强都是"))
	var texts []string
	for _, w := range words {
		texts = append(texts, w.Text)
	}
	a.Equal(texts, []string{"王伟", "和", "李强", "都", "是"})
	a.Equal(words[0].State, StateE)
	a.Equal(words[1].State, StateS)
	a.Equal(m.Tag(words[0].State), "nr")
	a.Equal(m.Tag(words[1].State), "n")
}

func TestTrainer(t *testing.T) {
	a := assert.New(t)
	tr := NewTrainer()
	tr.Add(strings.Fields("王伟/nr 和/c 李强/nr"))
	tr.Add(strings.Fields("我/r 和/c 你/r"))
	m := tr.Model()

	a.Equal(m.Start[StateB], math.Log(0.5))
	a.Equal(m.Start[StateS], math.Log(0.5))
	a.Equal(m.Start[StateM], MinFloat)
	a.Equal(m.Trans[StateB][StateE], 0.0)
	a.Equal(m.Trans[StateS][StateS], math.Log(2.0/3.0))
	a.Equal(m.Trans[StateB][StateM], MinFloat)
	a.Equal(m.Emission(StateS, '和'), math.Log(0.5))
	a.Equal(m.Emission(StateB, '和'), MinFloat)
	a.Equal(m.Tag(StateB), "nr")
	a.Equal(m.Tag(StateS), "c") // ties go to the smaller tag

	var buf bytes.Buffer
	a.NotError(m.Save(&buf))
	a.True(strings.HasPrefix(buf.String(), "S B -0.6931471805599453\n"))
	loaded := NewModel()
	a.NotError(loaded.Load(&buf))
	if !reflect.DeepEqual(loaded, m) {
		t.Errorf("Load(Save(m)) = %v, want %v", loaded, m)
	}
}

func TestTrainer_AddWord(t *testing.T) {
	a := assert.New(t)
	tr := NewTrainer()
	tr.AddWord("北京", 3)
	tr.AddWord("京", 1)
	tr.AddWord("李小龙", 1)
	m := tr.Model()

	a.Equal(m.Emission(StateB, '北'), math.Log(3.0/4.0))
	a.Equal(m.Emission(StateB, '李'), math.Log(1.0/4.0))
	a.Equal(m.Emission(StateE, '京'), math.Log(3.0/4.0))
	a.Equal(m.Emission(StateM, '小'), 0.0)
	a.Equal(m.Emission(StateS, '京'), 0.0)
	a.Equal(m.Emission(StateS, '北'), MinFloat)

	// transitions are left to the caller
	a.Equal(m.Start[StateB], MinFloat)
	a.Equal(m.Trans[StateB][StateE], MinFloat)
}

func TestDefault_Coverage(t *testing.T) {
	a := assert.New(t)
	m := defaultModel(t)

	a.Equal(len(m.Emit[StateB]), 5633)
	a.Equal(len(m.Emit[StateS]), 11580)
	a.Equal(m.Tag(StateE), "nr")
	a.Equal(m.Tag(StateS), "n")
	for s := 0; s < 4; s++ {
		var sum float64
		for _, p := range m.Emit[s] {
			sum += math.Exp(p)
		}
		if math.Abs(sum-1) > 1e-6 {
			t.Errorf("emissions of %s sum to %v", StateStr(s), sum)
		}
	}
}
