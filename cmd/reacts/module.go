package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/reacts/scripts"
)

type Module struct {
	dscope.Module
	Scripts scripts.Module
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)

func ce(err error) {
	if err != nil {
		panic(wrap(err))
	}
}
