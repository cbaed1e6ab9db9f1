package psqlbuilder

import "github.com/Masterminds/squirrel"

// psql билдер запросов с плейсхолдерами PostgreSQL ($1, $2, ...)
var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Select начинает построение SELECT запроса
func Select(columns ...string) squirrel.SelectBuilder {
	return psql.Select(columns...)
}

// Insert начинает построение INSERT запроса
func Insert(into string) squirrel.InsertBuilder {
	return psql.Insert(into)
}

// Update начинает построение UPDATE запроса
func Update(table string) squirrel.UpdateBuilder {
	return psql.Update(table)
}

// Delete начинает построение DELETE запроса
func Delete(from string) squirrel.DeleteBuilder {
	return psql.Delete(from)
}
