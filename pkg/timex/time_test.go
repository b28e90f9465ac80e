package timex

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTime_UnixMethods(t *testing.T) {
	// 创建一个固定时间
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tt := Time(now)

	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() = %v, want %v", tt.Unix(), now.Unix())
	}

	if tt.UnixMilli() != now.UnixMilli() {
		t.Errorf("UnixMilli() = %v, want %v", tt.UnixMilli(), now.UnixMilli())
	}

	// 通过等待一会确认它不是返回 time.Now()
	time.Sleep(10 * time.Millisecond)
	if tt.Unix() != now.Unix() {
		t.Errorf("Unix() changed after sleep, it should be static. got %v, want %v", tt.Unix(), now.Unix())
	}
}

func TestTime_JSONRoundTrip(t *testing.T) {
	tt := Time(time.Date(2024, 5, 20, 8, 30, 0, 0, time.Local))

	data, err := json.Marshal(tt)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `"2024-05-20 08:30:00"` {
		t.Errorf("Marshal = %s, want %s", data, `"2024-05-20 08:30:00"`)
	}

	var back Time
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if !back.Time().Equal(tt.Time()) {
		t.Errorf("round trip mismatch: got %v, want %v", back, tt)
	}
}

func TestTime_ZeroValue(t *testing.T) {
	var zero Time
	if !zero.IsZero() {
		t.Error("zero Time should report IsZero")
	}

	data, err := json.Marshal(zero)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	if string(data) != `""` {
		t.Errorf("zero Marshal = %s, want empty string", data)
	}
}
