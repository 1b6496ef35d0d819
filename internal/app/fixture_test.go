package service_test

import (
	"testing/fstest"

	"github.com/leodovqa/palworld-data-tool/internal/adapters/loader"
)

const fixtureFlat = `[
  {"id":"1","name":"Lamball","element":"Neutral","attack1":"Demon God","attack4":"Celestial Emperor"},
  {"id":"5","name":"Foxparks","element":"Fire","attack1":"Demon God","attack4":"Flame Emperor"},
  {"palNum":"12","palName":"Jolthog","element":"Electric","attack4":"Lord of Lightning"},
  {"id":"102","name":"Jetragon","element":"Dragon","attack1":"Legend","move1":"Legend","move4":"Eternal Engine","mountType":"flying"}
]`

const fixtureRaw = `[
  {"number":"1","name":"Lamball","elements":["Neutral"],"workSuitability":[{"type":"Handiwork","level":1},{"type":"Farming","level":1}]},
  {"number":"5","name":"Foxparks","elements":["Fire"],"workSuitability":[{"type":"Kindling","level":1}]},
  {"number":"12","name":"Jolthog","elements":["Electric"],"_rawText":"Generates electricity"},
  {"number":"102","name":"Jetragon","elements":["Dragon"],"workSuitability":[{"type":"Gathering","level":3},{"type":"Kindling","level":3}],"type":"mount","mountType":"flying"}
]`

func fixtureFS() fstest.MapFS {
	return fstest.MapFS{
		loader.FlatInput:         {Data: []byte(fixtureFlat)},
		loader.RawInput:          {Data: []byte(fixtureRaw)},
		loader.PalIconsInput:     {Data: []byte(`{"5":{"filename":"005_Foxparks.png"}}`)},
		loader.WorkIconsInput:    {Data: []byte(`{"Kindling":{"filename":"kindling.png"}}`)},
		loader.ElementIconsInput: {Data: []byte(`{"Fire":{"filename":"fire.png"}}`)},
	}
}

func fixtureSource() loader.Source {
	return loader.NewFSSource(fixtureFS(), "fixture")
}
