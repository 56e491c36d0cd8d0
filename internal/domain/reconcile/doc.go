// Package reconcile сверяет заказ с тем, что детектор нашёл на подносе.
//
// Поток данных односторонний: записи детектора сворачиваются в ItemCount
// (Aggregate), затем ItemCount сравнивается с заказом и правилами
// зависимостей (Reconcile). Обе функции чистые и безопасны для
// параллельного вызова; общий RuleSet только читается.
package reconcile
