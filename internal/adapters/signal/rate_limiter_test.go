package signal

import (
	"testing"
	"time"
)

func TestConnRateLimiterAllowsUpToLimit(t *testing.T) {
	rl := NewConnRateLimiter(3, time.Minute)
	for i := 0; i < 3; i++ {
		if !rl.Allow("tok") {
			t.Fatalf("attempt %d denied, want allowed", i)
		}
	}
	if rl.Allow("tok") {
		t.Fatal("attempt over limit allowed")
	}
	// Other tokens are independent.
	if !rl.Allow("other") {
		t.Fatal("independent token denied")
	}
}

func TestConnRateLimiterWindowExpires(t *testing.T) {
	rl := NewConnRateLimiter(1, 10*time.Millisecond)
	if !rl.Allow("tok") {
		t.Fatal("first attempt denied")
	}
	if rl.Allow("tok") {
		t.Fatal("second attempt within window allowed")
	}
	time.Sleep(20 * time.Millisecond)
	if !rl.Allow("tok") {
		t.Fatal("attempt after window expiry denied")
	}
}
