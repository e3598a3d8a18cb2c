package interpret

import (
	"testing"
)

func TestParseBudget(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantBudget int
		wantSet    bool
	}{
		{
			name:       "manwon unit scales by 10k",
			text:       "150만원으로 게이밍 PC",
			wantBudget: 1_500_000,
			wantSet:    true,
		},
		{
			name:       "man without won suffix",
			text:       "예산 100만 사무용",
			wantBudget: 1_000_000,
			wantSet:    true,
		},
		{
			name:       "raw won amount",
			text:       "800000원 이하로",
			wantBudget: 800_000,
			wantSet:    true,
		},
		{
			name:       "bare comma amount",
			text:       "office PC under 1,000,000",
			wantBudget: 1_000_000,
			wantSet:    true,
		},
		{
			name:    "no budget present",
			text:    "조용한 사무용 컴퓨터",
			wantSet: false,
		},
		{
			name:    "small bare number is not a budget",
			text:    "ram 32gb please",
			wantSet: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := Parse(tt.text)
			if tt.wantSet {
				if q.Budget == nil {
					t.Fatalf("Budget = nil, want %d", tt.wantBudget)
				}
				if *q.Budget != tt.wantBudget {
					t.Errorf("Budget = %d, want %d", *q.Budget, tt.wantBudget)
				}
			} else if q.Budget != nil {
				t.Errorf("Budget = %d, want unset", *q.Budget)
			}
		})
	}
}

func TestParsePurposeOrder(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"사무용 겸 게임도 돌아가는 PC", "office"}, // office listed first wins
		{"게이밍 컴퓨터 추천", "gaming"},
		{"방송용 스트리밍 머신", "streaming"},
		{"영상 편집 워크스테이션", "editing"},
		{"3d design rig", "design"},
		{"그냥 작업용", "work"},
		{"아무거나", ""},
	}

	for _, tt := range tests {
		q := Parse(tt.text)
		if q.Purpose != tt.want {
			t.Errorf("Parse(%q).Purpose = %q, want %q", tt.text, q.Purpose, tt.want)
		}
	}
}

func TestParsePreferences(t *testing.T) {
	q := Parse("150만원 인텔 공랭으로 사무용")
	if q.Platform != "intel" {
		t.Errorf("Platform = %q, want intel", q.Platform)
	}
	if q.Cooler != "air" {
		t.Errorf("Cooler = %q, want air", q.Cooler)
	}

	q = Parse("라이젠 수랭 게이밍")
	if q.Platform != "amd" {
		t.Errorf("Platform = %q, want amd", q.Platform)
	}
	if q.Cooler != "liquid" {
		t.Errorf("Cooler = %q, want liquid", q.Cooler)
	}

	// Unstated preferences stay unset - never guessed.
	q = Parse("office PC under 1,000,000")
	if q.Platform != "" || q.Cooler != "" {
		t.Errorf("Platform=%q Cooler=%q, want both unset", q.Platform, q.Cooler)
	}
}
