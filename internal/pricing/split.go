package pricing

import "strings"

// ElseKeyword разделитель веток формулы, регистрозависимый и только целым словом
const ElseKeyword = "ELSE"

// SplitElse делит формулу по первому ELSE
// found=false означает, что ELSE нет и then содержит всю формулу
func SplitElse(src string) (then, otherwise string, found bool) {
	idx := elseIndexes(src, 1)
	if len(idx) == 0 {
		return src, "", false
	}
	return src[:idx[0]], src[idx[0]+len(ElseKeyword):], true
}

// CountElse количество разделителей ELSE в формуле
func CountElse(src string) int {
	return len(elseIndexes(src, -1))
}

// elseIndexes позиции ELSE как отдельного слова; limit < 0 без ограничения
func elseIndexes(src string, limit int) []int {
	var result []int
	for offset := 0; offset < len(src); {
		i := strings.Index(src[offset:], ElseKeyword)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(ElseKeyword)
		if (start == 0 || !isWordByte(src[start-1])) && (end == len(src) || !isWordByte(src[end])) {
			result = append(result, start)
			if limit > 0 && len(result) == limit {
				break
			}
		}
		offset = end
	}
	return result
}

func isWordByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
