// Package main provides a demo program classifying mushrooms with a model trained by
// train_mushroom. It reads comma separated rows, with or without the class column,
// from a file or stdin and prints the predicted class and the class activations.
package main
