package main

import (
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/simplescene/internal/logger"
	"github.com/Faultbox/simplescene/pkg/formats"
)

func loadScene(path string) (*formats.Scene, error) {
	start := time.Now()
	scene, err := formats.ParseSceneFile(path, formats.SceneOptions{Logger: logger.Named("scene")})
	if err != nil {
		logger.Error("scene load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	logger.Info("scene loaded",
		zap.String("path", path),
		zap.Int("objects", len(scene.Objects)),
		zap.Int("skipped", scene.Skipped),
		zap.Duration("took", time.Since(start)))
	return scene, nil
}

func loadOBJ(path string) ([]formats.OBJMesh, error) {
	axes, err := cfg.OBJ.AxisMap()
	if err != nil {
		return nil, err
	}
	meshes, err := formats.ParseOBJFile(path, formats.OBJOptions{Axes: &axes, Logger: logger.Named("obj")})
	if err != nil {
		logger.Error("OBJ load failed", zap.String("path", path), zap.Error(err))
		return nil, err
	}
	logger.Info("OBJ loaded", zap.String("path", path), zap.Int("meshes", len(meshes)))
	return meshes, nil
}
