// Package schema хранит DDL базы данных.
package schema

import _ "embed"

// SQL создает таблицы users, tests и user_tests. Можно выполнять повторно.
//
//go:embed schema.sql
var SQL string
