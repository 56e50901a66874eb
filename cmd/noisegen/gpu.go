//go:build !nogpu

package main

import _ "github.com/gogpu/noise/gpu" // enable GPU evaluation
