package script

import (
	"strconv"
	"strings"
	"unicode"
)

// tokenize 按空白切分一行命令
//
// 双引号包围的词按 Go 字符串字面量解析，"#" 出现在词首时开始注释。
func tokenize(line string) ([]string, error) {
	var tokens []string
	rs := []rune(line)

	for i := 0; i < len(rs); {
		switch {
		case unicode.IsSpace(rs[i]):
			i++
		case rs[i] == '#':
			return tokens, nil
		case rs[i] == '"':
			end := i + 1
			for end < len(rs) && rs[end] != '"' {
				if rs[end] == '\\' {
					end++
				}
				end++
			}
			if end >= len(rs) {
				return nil, errUnterminated(string(rs[i:]))
			}
			lit := string(rs[i : end+1])
			v, err := strconv.Unquote(lit)
			if err != nil {
				return nil, errBadQuote(lit, err)
			}
			tokens = append(tokens, v)
			i = end + 1
		default:
			end := i
			for end < len(rs) && !unicode.IsSpace(rs[end]) {
				end++
			}
			tokens = append(tokens, string(rs[i:end]))
			i = end
		}
	}
	return tokens, nil
}

// formatValue 把序列元素格式化为带引号的字面量
func formatValue(v string) string {
	return strconv.Quote(v)
}

// formatSeq 把整个序列格式化为 ["a", "b"]
func formatSeq(seq []string) string {
	quoted := make([]string, len(seq))
	for i, v := range seq {
		quoted[i] = formatValue(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
