package classification

import (
	"testing"

	"gtoholdem/internal/deck"
)

func parse(t *testing.T, notation string) []deck.Card {
	t.Helper()
	cards, err := deck.ParseCards(notation)
	if err != nil {
		t.Fatalf("parsing %q: %v", notation, err)
	}
	return cards
}

func TestAnalyzeBoardTexture(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		board  string
		bucket WetnessBucket
	}{
		{"disconnected rainbow", "Ks 7h 2c", VeryDry},
		{"dry with a broadway gap", "Kd 8h 3c", VeryDry},
		{"ace high rainbow", "As 7h 2c", Dry},
		{"two tone with broadway", "Kh Qh 7c", Dry},
		{"connected middle cards", "9h 8d 7s", SemiWet},
		{"connected two tone", "9h 8h 7s", Wet},
		{"monotone connected", "Th 9h 8h", VeryWet},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := AnalyzeBoard(parse(t, tt.board))
			if got.Bucket != tt.bucket {
				t.Errorf("AnalyzeBoard(%s).Bucket = %v (wetness %.2f), want %v",
					tt.board, got.Bucket, got.Wetness, tt.bucket)
			}
		})
	}
}

func TestAnalyzeBoardShape(t *testing.T) {
	t.Parallel()

	mono := AnalyzeBoard(parse(t, "Th 9h 2h"))
	if !mono.Monotone || mono.Rainbow {
		t.Errorf("monotone board misread: %+v", mono)
	}

	rainbow := AnalyzeBoard(parse(t, "As 7h 2c"))
	if !rainbow.Rainbow || rainbow.Monotone || rainbow.TwoTone {
		t.Errorf("rainbow board misread: %+v", rainbow)
	}

	paired := AnalyzeBoard(parse(t, "As Ah 7c"))
	if !paired.Paired {
		t.Errorf("paired board misread: %+v", paired)
	}

	// A river with one doubled suit cannot make a flush: still rainbow.
	river := AnalyzeBoard(parse(t, "As 7h 2c 9d 3s"))
	if !river.Rainbow || river.TwoTone {
		t.Errorf("flushless river misread: %+v", river)
	}

	flushy := AnalyzeBoard(parse(t, "As 7s 2c 9d 3s"))
	if flushy.Rainbow || !flushy.TwoTone {
		t.Errorf("three-suited river misread: %+v", flushy)
	}

	// Pairing discounts wetness against the unpaired equivalent.
	unpaired := AnalyzeBoard(parse(t, "9h 8h 7s"))
	pairedWet := AnalyzeBoard(parse(t, "9h 8h 8s"))
	if pairedWet.Wetness >= unpaired.Wetness {
		t.Errorf("paired wetness %.2f not below unpaired %.2f", pairedWet.Wetness, unpaired.Wetness)
	}
}

func TestWetnessBucketsAreOrdered(t *testing.T) {
	t.Parallel()

	boards := []string{
		"Ks 7h 2c",
		"As 7h 2c",
		"Kh Qh 7c",
		"9h 8d 7s",
		"9h 8h 7s",
		"Th 9h 8h",
	}
	prev := -1.0
	for _, b := range boards {
		w := AnalyzeBoard(parse(t, b)).Wetness
		if w <= prev {
			t.Fatalf("wetness not increasing at %s: %.2f <= %.2f", b, w, prev)
		}
		prev = w
	}
}

func TestDetectDraws(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hole  string
		board string
		check func(t *testing.T, d DrawInfo)
	}{
		{
			name:  "nut flush draw",
			hole:  "Ah Kh",
			board: "Qh 7h 2s",
			check: func(t *testing.T, d DrawInfo) {
				if !d.NutFlushDraw {
					t.Errorf("nut flush draw missed: %+v", d)
				}
				if d.Outs != 9 {
					t.Errorf("outs = %d, want 9", d.Outs)
				}
			},
		},
		{
			name:  "plain flush draw",
			hole:  "Jh Th",
			board: "Qh 7h 2s",
			check: func(t *testing.T, d DrawInfo) {
				if !d.FlushDraw || d.NutFlushDraw {
					t.Errorf("flush draw misread: %+v", d)
				}
			},
		},
		{
			name:  "open ended straight draw",
			hole:  "Jh Ts",
			board: "9d 8c 2s",
			check: func(t *testing.T, d DrawInfo) {
				if !d.OpenEnded {
					t.Errorf("OESD missed: %+v", d)
				}
				if d.Outs != 8 {
					t.Errorf("outs = %d, want 8", d.Outs)
				}
			},
		},
		{
			name:  "gutshot",
			hole:  "Jh Th",
			board: "8d 7c 2s",
			check: func(t *testing.T, d DrawInfo) {
				if !d.Gutshot || d.OpenEnded {
					t.Errorf("gutshot misread: %+v", d)
				}
				if d.Outs != 4 {
					t.Errorf("outs = %d, want 4", d.Outs)
				}
			},
		},
		{
			name:  "combo draw outs are deduplicated",
			hole:  "Jh Th",
			board: "9h 8h 2s",
			check: func(t *testing.T, d DrawInfo) {
				if !(d.FlushDraw && d.OpenEnded) {
					t.Fatalf("combo draw misread: %+v", d)
				}
				// 9 flush cards + 8 straight cards - 2 counted both ways.
				if d.Outs != 15 {
					t.Errorf("outs = %d, want 15", d.Outs)
				}
				if !d.IsComboDraw() {
					t.Error("combo draw flag not set")
				}
			},
		},
		{
			name:  "wheel draw uses the ace low",
			hole:  "Ah 4s",
			board: "3d 2c Kh",
			check: func(t *testing.T, d DrawInfo) {
				if !d.Gutshot {
					t.Errorf("wheel gutshot missed: %+v", d)
				}
			},
		},
		{
			name:  "backdoor draws on the flop",
			hole:  "Ah 5h",
			board: "Th 9s 2c",
			check: func(t *testing.T, d DrawInfo) {
				if !d.BackdoorFlush {
					t.Errorf("backdoor flush missed: %+v", d)
				}
			},
		},
		{
			name:  "made straight is not a draw",
			hole:  "Jh Th",
			board: "9d 8c 7s",
			check: func(t *testing.T, d DrawInfo) {
				if d.OpenEnded || d.Gutshot {
					t.Errorf("made straight flagged as draw: %+v", d)
				}
			},
		},
		{
			name:  "no draws on the river",
			hole:  "Jh Th",
			board: "9h 8h 2s 2d 3c",
			check: func(t *testing.T, d DrawInfo) {
				if d.FlushDraw || d.OpenEnded || d.Outs != 0 {
					t.Errorf("river reported draws: %+v", d)
				}
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.check(t, DetectDraws(parse(t, tt.hole), parse(t, tt.board)))
		})
	}
}

func TestAnalyzeCategories(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		hole  string
		board string
		want  Category
	}{
		{"flopped set", "7h 7d", "As 7c 2s", Premium},
		{"straight on the turn", "Jh Th", "9d 8c 7s 2h", Premium},
		{"overpair", "Kh Kd", "9s 7c 2h", Strong},
		{"top pair top kicker", "Ah Kd", "Ks 7c 2h", Strong},
		{"top pair weak kicker", "Kh 5d", "Ks 7c 2h", Marginal},
		{"middle pair", "9h 8d", "Ks 9c 2h", Weak},
		{"air", "7h 5d", "Ks Qc 2h", Trash},
		{"nut flush draw with overcards", "Ah Kh", "Qh 7h 2s", StrongDraw},
		{"big combo draw", "Jh Th", "9h 8h 2s", MonsterDraw},
		{"bare gutshot", "Jh Th", "8d 7c 2s", WeakDraw},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := Analyze(parse(t, tt.hole), parse(t, tt.board))
			if err != nil {
				t.Fatal(err)
			}
			if a.Category != tt.want {
				t.Errorf("Analyze(%s | %s) = %v (strength %.2f, draws %+v), want %v",
					tt.hole, tt.board, a.Category, a.RelativeStrength, a.Draws, tt.want)
			}
		})
	}
}

func TestAnalyzeRejectsBadInput(t *testing.T) {
	t.Parallel()

	if _, err := Analyze(parse(t, "Ah"), parse(t, "Ks 7c 2h")); err == nil {
		t.Error("one hole card accepted")
	}
	if _, err := Analyze(parse(t, "Ah Kh"), parse(t, "Ks 7c")); err == nil {
		t.Error("two-card board accepted")
	}
}
