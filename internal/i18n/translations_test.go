package i18n

import (
	"testing"
)

// TestTextIn 测试指定语言的文案查询
func TestTextIn(t *testing.T) {
	if got := TextIn(LangFR, "program_name"); got != "Nom du programme :" {
		t.Errorf("法语文案不正确: %q", got)
	}
	if got := TextIn(LangEN, "program_name"); got != "Program name:" {
		t.Errorf("英语文案不正确: %q", got)
	}
}

// TestTextInFallback 测试未知语言回退到法语
func TestTextInFallback(t *testing.T) {
	if got := TextIn("de", "program_name"); got != TextIn(LangFR, "program_name") {
		t.Errorf("未知语言应回退到法语，实际 %q", got)
	}
}

// TestTextInUnknownKey 测试未知键原样返回
func TestTextInUnknownKey(t *testing.T) {
	if got := TextIn(LangFR, "no_such_key"); got != "no_such_key" {
		t.Errorf("未知键应原样返回，实际 %q", got)
	}
}

// TestLanguageDetection 测试环境变量语言推断
func TestLanguageDetection(t *testing.T) {
	cases := map[string]string{
		"fr_FR.UTF-8": LangFR,
		"en_US.UTF-8": LangEN,
		"en":          LangEN,
		"de_DE":       LangFR, // 不支持的语言回退法语
		"":            LangFR,
	}

	for env, want := range cases {
		t.Setenv("LC_ALL", env)
		t.Setenv("LC_MESSAGES", "")
		t.Setenv("LANG", "")
		if got := Language(); got != want {
			t.Errorf("LC_ALL=%q 期望 %s，实际 %s", env, want, got)
		}
	}
}
