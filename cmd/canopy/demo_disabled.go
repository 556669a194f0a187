//go:build nodemo

package main

import "github.com/hubastard/canopy/engine/app"

const demoAvailable = false

func demoLayers() []app.Layer { return nil }
