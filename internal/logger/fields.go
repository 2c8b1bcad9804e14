package logger

import "go.uber.org/zap"

// Field constructors, re-exported so callers do not import zap directly.

func String(key, value string) Field { return zap.String(key, value) }

func Int(key string, value int) Field { return zap.Int(key, value) }

func Bool(key string, value bool) Field { return zap.Bool(key, value) }

func Any(key string, value any) Field { return zap.Any(key, value) }

func Err(err error) Field { return zap.Error(err) }
