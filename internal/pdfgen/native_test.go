package pdfgen

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/jonathan/resume-builder/internal/layout"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleJob() Job {
	return NewJob(types.NewBundle(types.SampleResume(), nil, layout.Defaults()))
}

func TestNativeEngine_SinglePage(t *testing.T) {
	data, err := (&NativeEngine{}).Render(context.Background(), sampleJob())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	pages, err := CountPages(data)
	require.NoError(t, err)
	assert.Equal(t, 1, pages)
}

func TestNativeEngine_OverflowsToSecondPage(t *testing.T) {
	job := sampleJob()
	for i := 0; i < 15; i++ {
		job.Resume.Experience = append(job.Resume.Experience, types.Experience{
			Title:   fmt.Sprintf("Engineer %d", i),
			Company: "Acme",
			Date:    "2020",
			Description: types.Bullets{
				"Designed and operated a multi-region event pipeline handling billions of messages per day.",
				"Reduced infrastructure spend by consolidating clusters and right-sizing workloads.",
				"Mentored engineers and led design reviews across three teams.",
			},
		})
	}

	data, err := (&NativeEngine{}).Render(context.Background(), job)
	require.NoError(t, err)

	pages, err := CountPages(data)
	require.NoError(t, err)
	assert.Greater(t, pages, 1)
}

func TestNativeEngine_AllSectionsAndLayouts(t *testing.T) {
	job := sampleJob()
	job.Resume.FullName = "Zoë Ñúñez"
	job.Resume.Education[0].Courses = types.Bullets{"Databases", "Networks"}
	job.Resume.Projects = []types.Project{{Title: "Tracer", TechStack: "Go", Date: "2024", Description: types.Bullets{"Sampled spans"}}}
	job.Resume.Certificates = []types.Certificate{{Name: "CKA"}}
	job.Order = types.AvailableSections
	job.Settings.OneLineEducation = false

	data, err := (&NativeEngine{}).Render(context.Background(), job)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestNativeEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := (&NativeEngine{}).Render(ctx, sampleJob())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCountPages_Invalid(t *testing.T) {
	var pdfErr *Error

	_, err := CountPages([]byte("hello"))
	assert.ErrorAs(t, err, &pdfErr)

	_, err = CountPages([]byte("%PDF-1.4\ngarbage"))
	assert.ErrorAs(t, err, &pdfErr)
}
