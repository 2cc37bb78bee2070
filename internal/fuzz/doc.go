// Package fuzztests houses Go fuzz harnesses that exercise the front of the
// pipeline (source -> lexer -> parser -> infer). Its goal is to smoke test
// robustness and guard against panics or hangs on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и вывод типов.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
