// Package main provides a demo program for training a mushroom edibility classifier on
// the UCI mushroom dataset. Run without arguments it reads raw_data from the working
// directory, one-hot encodes the categorical columns and trains a feed-forward network,
// printing train and test error after every epoch.
package main
