package ics

import (
	"strings"
	"unicode/utf8"
)

// Максимальная длина физической строки ICS в октетах (RFC 5545 3.1)
const maxLineOctets = 75

// EscapeText экранирует спецсимволы текстового значения ICS:
// обратный слэш, точку с запятой, запятую. Перевод строки кодируется
// литеральной последовательностью \n — сырых переводов строк внутри
// значения не остаётся, иначе ломается фолдинг.
func EscapeText(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case ';':
			b.WriteString(`\;`)
		case ',':
			b.WriteString(`\,`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UnescapeText — точная обратная операция к EscapeText.
// Неизвестные escape-последовательности пропускаются как есть:
// на входе данные чужих реализаций, падать на них нельзя.
func UnescapeText(text string) string {
	if !strings.ContainsRune(text, '\\') {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c != '\\' || i == len(text)-1 {
			b.WriteByte(c)
			continue
		}
		switch next := text[i+1]; next {
		case '\\', ';', ',':
			b.WriteByte(next)
			i++
		case 'n', 'N':
			b.WriteByte('\n')
			i++
		default:
			// неизвестный escape — оставляем оба символа
			b.WriteByte(c)
		}
	}
	return b.String()
}

// FoldLine сворачивает физическую строку длиннее 75 октетов:
// продолжения начинаются с одного пробела и несут до 74 октетов.
// Разрез никогда не попадает в середину UTF-8 руны.
func FoldLine(line string) string {
	if len(line) <= maxLineOctets {
		return line
	}

	var b strings.Builder
	width := maxLineOctets
	for len(line) > width {
		cut := runeBoundaryCut(line, width)
		b.WriteString(line[:cut])
		b.WriteString("\r\n ")
		line = line[cut:]
		width = maxLineOctets - 1
	}
	b.WriteString(line)
	return b.String()
}

// runeBoundaryCut возвращает наибольшую позицию <= max на границе руны
func runeBoundaryCut(s string, max int) int {
	cut := 0
	for i, r := range s {
		next := i + utf8.RuneLen(r)
		if next > max {
			break
		}
		cut = next
	}
	if cut == 0 {
		// одна руна шире лимита не бывает, но на всякий случай не зацикливаемся
		_, size := utf8.DecodeRuneInString(s)
		cut = size
	}
	return cut
}

// UnfoldLines разбивает документ на логические строки: строка, начинающаяся
// с пробела или табуляции — продолжение предыдущей, ведущий символ отбрасывается.
func UnfoldLines(content string) []string {
	raw := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSuffix(l, "\r")
		if len(l) > 0 && (l[0] == ' ' || l[0] == '\t') && len(lines) > 0 {
			lines[len(lines)-1] += l[1:]
			continue
		}
		lines = append(lines, l)
	}
	return lines
}
