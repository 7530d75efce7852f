package script

import (
	"fmt"
	"strings"
)

// nsisEscaper NSIS 字符串字面量转义规则
//
// 策略选择：转义而非拒绝。双引号会终止 NSIS 字符串字面量，
// 转义为 $\"；美元符号引入变量引用，转义为 $$。
// 普通 Windows 路径（反斜杠分隔）不含这两类字符，原样通过。
var nsisEscaper = strings.NewReplacer(
	`$`, `$$`,
	`"`, `$\"`,
)

// escapeValue 转义单个标量值
func escapeValue(s string) string {
	return nsisEscaper.Replace(s)
}

// checkValue 拒绝无法安全转义的值
//
// 控制字符（换行、回车、制表符等）会破坏单行指令结构，
// 任何引号策略都救不回来，直接报 ErrUnsafeValue。
func checkValue(field, s string) error {
	for _, r := range s {
		if r < 0x20 || r == 0x7f {
			return fmt.Errorf("%w: %s 含有控制字符 (0x%02x)", ErrUnsafeValue, field, r)
		}
	}
	return nil
}
