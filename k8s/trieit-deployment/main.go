package main

import (
	"fmt"
	"os"

	appsv1 "github.com/pulumi/pulumi-kubernetes/sdk/v3/go/kubernetes/apps/v1"
	corev1 "github.com/pulumi/pulumi-kubernetes/sdk/v3/go/kubernetes/core/v1"
	metav1 "github.com/pulumi/pulumi-kubernetes/sdk/v3/go/kubernetes/meta/v1"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"gopkg.in/yaml.v3"
)

const (
	replicas = 3
	port     = 1337
)

// nodeConfig is the slice of the server config file the deployment sets.
type nodeConfig struct {
	Server struct {
		Port          int      `yaml:"port"`
		Index         string   `yaml:"index"`
		FlushInterval string   `yaml:"flush_interval"`
		MaxPool       int      `yaml:"max_pool"`
		Peers         []string `yaml:"peers"`
	} `yaml:"server"`
}

// peerURLs names every pod of the headless service.
func peerURLs(name string, n int) []string {
	peers := make([]string, 0, n)
	for i := 0; i < n; i++ {
		peers = append(peers, fmt.Sprintf("http://%s-%d.%s.%s:%d", name, i, name, name, port))
	}
	return peers
}

func main() {

	deploymentName := "trieit"
	namespace := deploymentName
	version := os.Getenv("TRIEIT_VERSION")
	pulumi.Run(func(ctx *pulumi.Context) error {

		appLabels := pulumi.StringMap{
			"app":     pulumi.String(deploymentName),
			"version": pulumi.String(version),
		}

		md := &metav1.ObjectMetaArgs{
			Labels:    appLabels,
			Namespace: pulumi.StringPtr(namespace),
			Name:      pulumi.StringPtr(deploymentName),
		}

		var cfg nodeConfig
		cfg.Server.Port = port
		cfg.Server.Index = "compressed"
		cfg.Server.FlushInterval = "30s"
		cfg.Server.MaxPool = 1000
		cfg.Server.Peers = peerURLs(deploymentName, replicas)

		configData, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}

		nodeConfigMap, err := corev1.NewConfigMap(ctx, deploymentName, &corev1.ConfigMapArgs{
			Metadata: &metav1.ObjectMetaArgs{
				Labels:    appLabels,
				Name:      pulumi.StringPtr(deploymentName),
				Namespace: pulumi.String(namespace),
			},
			Data: pulumi.StringMap{"config.yaml": pulumi.String(string(configData))},
		})
		if err != nil {
			return err
		}

		svc, err := corev1.NewService(ctx, deploymentName, &corev1.ServiceArgs{
			Metadata: md,
			Spec: corev1.ServiceSpecArgs{
				ClusterIP: pulumi.StringPtr("None"),
				Ports: corev1.ServicePortArray{
					corev1.ServicePortArgs{
						TargetPort: pulumi.Int(port),
						Port:       pulumi.Int(80),
					},
				},
				Selector: appLabels,
			},
		},
		)
		if err != nil {
			return err
		}

		ctx.Export("svc name", svc.Metadata.Elem().Name())

		selector := &metav1.LabelSelectorArgs{
			MatchLabels: appLabels,
		}
		configVolumeName := pulumi.String("trieit-configs")

		ss, err := appsv1.NewStatefulSet(ctx, deploymentName, &appsv1.StatefulSetArgs{
			Metadata: md,
			Spec: appsv1.StatefulSetSpecArgs{
				// peers relay batches to each other from the start.
				PodManagementPolicy: pulumi.StringPtr("Parallel"),
				Replicas:            pulumi.Int(replicas),
				Selector:            selector,
				ServiceName:         pulumi.String(deploymentName),
				Template: &corev1.PodTemplateSpecArgs{
					Metadata: &metav1.ObjectMetaArgs{
						Labels: appLabels,
					},
					Spec: &corev1.PodSpecArgs{
						Containers: corev1.ContainerArray{
							corev1.ContainerArgs{
								Name: pulumi.String("trieit"),
								Args: pulumi.StringArray{
									pulumi.String("/trieit-server"), pulumi.String("-c"), pulumi.String("/etc/trieit/config.yaml"),
								},
								ImagePullPolicy: pulumi.String("Always"),
								Image:           pulumi.String(fmt.Sprintf("registry.gitlab.com/pnathan/trieit:%s", version)),
								Ports: corev1.ContainerPortArray{
									corev1.ContainerPortArgs{
										ContainerPort: pulumi.Int(port),
									},
								},
								ReadinessProbe: &corev1.ProbeArgs{
									HttpGet: &corev1.HTTPGetActionArgs{
										Path: pulumi.String("/healthz"),
										Port: pulumi.Int(port),
									},
								},
								VolumeMounts: &corev1.VolumeMountArray{
									&corev1.VolumeMountArgs{
										Name:      configVolumeName,
										MountPath: pulumi.String("/etc/trieit/"),
									},
								},
							},
						},
						Volumes: &corev1.VolumeArray{
							&corev1.VolumeArgs{
								Name: configVolumeName,
								ConfigMap: &corev1.ConfigMapVolumeSourceArgs{
									Name: nodeConfigMap.Metadata.Name(),
								},
							},
						},
					},
				},
			},
		})
		if err != nil {
			return err
		}

		ctx.Export("ss name", ss.Metadata.Elem().Name())

		return nil
	})
}
