// Package task tracks URL probe jobs run through a bounded queue. A Task is
// recorded in a TaskStore when submitted, and the store follows the queue's
// lifecycle notifications until the probe completes, fails or is discarded.
package task
