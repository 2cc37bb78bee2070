// Package format renders AST nodes back to source text.
//
// Назначение: текст узлов для фикс-итов, сравнения атрибутов и отображения типов.
// Узлы из парсера копируются из исходника как есть; синтетические узлы
// (результат With*-правок) собираются заново, а их неизменённые дети
// по-прежнему копируются из исходника.
// Не делает: форматирование целых файлов.
// Зависимости: internal/ast, internal/source.
package format
