// Package repository provides adapters for implementing refreshingcache.Repository.
//
// This package contains FunctionsRepository, which allows building a repository from
// a function callback, and ObservedRepository, which reports every failed save to a
// callback before returning the error unchanged.
package repository
