package record

import "testing"

func TestHashKey(t *testing.T) {
	tests := []struct {
		key  string
		want uint32
	}{
		{"", 0},
		{"a", 3589},
		{"ab", 4120141},
		{"hello", 2045467171},
		{"testkey", 308355629},
		{"deletekey", 3684766853},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := HashKey([]byte(tt.key))
			if got != tt.want {
				t.Errorf("HashKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestHashKeyIsDeterministic(t *testing.T) {
	key := []byte("hello")
	if HashKey(key) != HashKey(key) {
		t.Fatal("HashKey returned different values for the same key")
	}
	if HashKey(key) == 0 {
		t.Fatal("HashKey(\"hello\") should not be zero")
	}
}

func TestBucket(t *testing.T) {
	t.Run("keys map into capacity", func(t *testing.T) {
		if got := Bucket(HashKey([]byte("testkey")), 128); got != 45 {
			t.Errorf("Bucket(testkey) = %d, want 45", got)
		}
	})

	t.Run("distinct keys can share a bucket", func(t *testing.T) {
		a := Bucket(HashKey([]byte("a")), 128)
		b := Bucket(HashKey([]byte("deletekey")), 128)
		if a != b {
			t.Errorf("expected a and deletekey to collide, got %d and %d", a, b)
		}
	})
}
