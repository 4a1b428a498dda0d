// Package tui holds the small drawing helpers and widgets the views share.
package tui

import "github.com/gdamore/tcell/v2"

// DrawText writes a string starting at (x, y), clipped at the screen edge.
func DrawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	w, h := s.Size()
	if y < 0 || y >= h {
		return
	}
	for _, r := range text {
		if x >= w {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, style)
		}
		x++
	}
}

// DrawTextCentered writes text centered on row y.
func DrawTextCentered(s tcell.Screen, y int, style tcell.Style, text string) {
	w, _ := s.Size()
	DrawText(s, (w-len([]rune(text)))/2, y, style, text)
}

// FillRect fills a rectangle with rune r.
func FillRect(s tcell.Screen, x, y, w, h int, r rune, style tcell.Style) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			s.SetContent(col, row, r, nil, style)
		}
	}
}

// DrawBox draws a single-line border around the given rectangle.
func DrawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	if w < 2 || h < 2 {
		return
	}
	for col := x + 1; col < x+w-1; col++ {
		s.SetContent(col, y, '─', nil, style)
		s.SetContent(col, y+h-1, '─', nil, style)
	}
	for row := y + 1; row < y+h-1; row++ {
		s.SetContent(x, row, '│', nil, style)
		s.SetContent(x+w-1, row, '│', nil, style)
	}
	s.SetContent(x, y, '┌', nil, style)
	s.SetContent(x+w-1, y, '┐', nil, style)
	s.SetContent(x, y+h-1, '└', nil, style)
	s.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

// WrapText breaks text into lines of at most width runes, on word
// boundaries where possible.
func WrapText(text string, width int) []string {
	if width < 1 {
		return nil
	}
	var lines []string
	for _, para := range splitLines(text) {
		if para == "" {
			lines = append(lines, "")
			continue
		}
		line := ""
		for _, word := range splitWords(para) {
			switch {
			case line == "":
				line = word
			case len([]rune(line))+1+len([]rune(word)) <= width:
				line += " " + word
			default:
				lines = append(lines, line)
				line = word
			}
			for len([]rune(line)) > width {
				r := []rune(line)
				lines = append(lines, string(r[:width]))
				line = string(r[width:])
			}
		}
		lines = append(lines, line)
	}
	return lines
}

func splitLines(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == '\n' {
			out = append(out, cur)
			cur = ""
			continue
		}
		cur += string(r)
	}
	return append(out, cur)
}

func splitWords(s string) []string {
	var out []string
	cur := ""
	for _, r := range s {
		if r == ' ' || r == '\t' {
			if cur != "" {
				out = append(out, cur)
				cur = ""
			}
			continue
		}
		cur += string(r)
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}
