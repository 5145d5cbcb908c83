package utils

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"My Store", "my-store"},
		{"my-store", "my-store"},
		{"Big   Cheese\tShop", "big-cheese-shop"},
		{"ACME", "acme"},
		{"", ""},
	}
	for _, tt := range tests {
		got := Slugify(tt.in)
		if got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
		if again := Slugify(got); again != got {
			t.Errorf("Slugify 不幂等: %q -> %q", got, again)
		}
	}
}

func TestCapitalizeFirst(t *testing.T) {
	tests := map[string]string{
		"jane":  "Jane",
		"Jane":  "Jane",
		"émile": "Émile",
		"":      "",
	}
	for in, want := range tests {
		if got := CapitalizeFirst(in); got != want {
			t.Errorf("CapitalizeFirst(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPassword(t *testing.T) {
	hashed, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if !CheckPassword("secret1", hashed) {
		t.Error("正确密码校验失败")
	}
	if CheckPassword("secret2", hashed) {
		t.Error("错误密码校验通过")
	}
}
