package script

import (
	"errors"
	"testing"
)

// TestEscapeValue 测试 NSIS 字符串转义
func TestEscapeValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`C:\Program Files\MonApp`, `C:\Program Files\MonApp`}, // 普通路径原样通过
		{`Mon "App"`, `Mon $\"App$\"`},
		{`Price$`, `Price$$`},
		{`a"b$c`, `a$\"b$$c`},
		{``, ``},
	}

	for _, c := range cases {
		if got := escapeValue(c.in); got != c.want {
			t.Errorf("escapeValue(%q) = %q，期望 %q", c.in, got, c.want)
		}
	}
}

// TestCheckValueControlChars 测试控制字符被拒绝
func TestCheckValueControlChars(t *testing.T) {
	for _, bad := range []string{"a\nb", "a\rb", "a\tb", "a\x00b"} {
		if err := checkValue("测试字段", bad); !errors.Is(err, ErrUnsafeValue) {
			t.Errorf("checkValue(%q) 期望 ErrUnsafeValue，实际 %v", bad, err)
		}
	}

	if err := checkValue("测试字段", `C:\Program Files\App "quoted"`); err != nil {
		t.Errorf("可转义的值不应被拒绝: %v", err)
	}
}
