// Package trainer provides high-level training orchestration for the mushroom classifier.
// It splits the encoded dataset into train and test parts, runs a fixed number of
// backpropagation epochs and reports the train and test error after every epoch.
package trainer
