// Package ticklogrus provides small helpers to report tickkit panics via
// github.com/sirupsen/logrus.
package ticklogrus
